package random

import (
	crypto_rand "crypto/rand"
	"math/big"
	"math/rand"
)

func NewSeed() int64 {
	const MaxUint = ^uint(0)
	const MaxInt = int(MaxUint >> 1)
	nBig, err := crypto_rand.Int(crypto_rand.Reader, big.NewInt(int64(MaxInt)))
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}

	return nBig.Int64()
}

// NewSource returns a seeded source. A zero seed picks a secure random seed.
func NewSource(seed int64) rand.Source {
	if seed == 0 {
		seed = NewSeed()
	}
	return rand.NewSource(seed)
}

// ConstantSource yields the same value forever. Float64 on it returns V / 2^63,
// so V = 0 makes every chance roll succeed. rand.Shuffle never returns on a
// zero source, so decks must keep a seeded one.
type ConstantSource struct {
	V int64
}

func (s ConstantSource) Int63() int64 {
	return s.V
}

func (s ConstantSource) Seed(int64) {}
