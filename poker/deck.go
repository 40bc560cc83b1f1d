package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

var fullDeck *Deck

func init() {
	fullDeck = &Deck{cards: initializeFullCards()}
}

type Deck struct {
	cards   []*Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a shuffled 52-card deck. The deck shares randGen with its
// owner so that a single source drives every random decision of a game.
func NewDeck(randGen *rand.Rand) *Deck {
	if randGen == nil {
		randGen = rand.New(newSeed())
	}
	deck := &Deck{randGen: randGen}
	deck.Reset()
	return deck
}

// NewDeckFromCards restores a draw pile in the given order.
func NewDeckFromCards(cards []*Card, randGen *rand.Rand) *Deck {
	if randGen == nil {
		randGen = rand.New(newSeed())
	}
	return &Deck{cards: CloneCards(cards), randGen: randGen}
}

// Reset puts all 52 standard cards back and shuffles.
func (deck *Deck) Reset() *Deck {
	deck.cards = CloneCards(fullDeck.cards)
	return deck.Shuffle()
}

func (deck *Deck) Shuffle() *Deck {
	if deck.randGen == nil {
		deck.randGen = rand.New(newSeed())
	}
	deck.randGen.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})
	return deck
}

// Draw removes up to n cards from the top of the deck. Fewer are returned when the deck runs out.
func (deck *Deck) Draw(n int) []*Card {
	if n <= 0 {
		return nil
	}
	if n > len(deck.cards) {
		n = len(deck.cards)
	}
	cards := make([]*Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

// Cards returns the draw pile top first.
func (deck *Deck) Cards() []*Card {
	return deck.cards
}

// Stack moves the given cards to the top of the deck in order. Used by scripted games.
func (deck *Deck) Stack(top []*Card) {
	rest := make([]*Card, 0, len(deck.cards))
	for _, card := range deck.cards {
		if !containsCard(top, card) {
			rest = append(rest, card)
		}
	}
	deck.cards = append(CloneCards(top), rest...)
}

func containsCard(cards []*Card, card *Card) bool {
	for _, c := range cards {
		if c.Suit == card.Suit && c.Rank == card.Rank {
			return true
		}
	}
	return false
}

func initializeFullCards() []*Card {
	var cards []*Card
	for _, suit := range AllSuits {
		for _, rank := range AllRanks {
			cards = append(cards, &Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}
