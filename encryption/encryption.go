package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// saveHeader prefixes every sealed save so that plain JSON is never mistaken for ciphertext.
var saveHeader = []byte("RPK1")

var ErrNotSealed = errors.New("data is not a sealed save")

// SealSave encrypts a save blob with a key derived from the uuid.
func SealSave(data []byte, key uuid.UUID) ([]byte, error) {
	encrypted, err := EncryptWithUUIDKey(data, key)
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), saveHeader...), encrypted...), nil
}

// OpenSave reverses SealSave.
func OpenSave(sealed []byte, key uuid.UUID) ([]byte, error) {
	if !bytes.HasPrefix(sealed, saveHeader) {
		return nil, ErrNotSealed
	}
	return DecryptWithUUIDKey(sealed[len(saveHeader):], key)
}

// IsSealed reports whether data was produced by SealSave.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, saveHeader)
}

func EncryptWithUUIDKey(data []byte, _uuid uuid.UUID) ([]byte, error) {
	key, err := uuidToBytes(_uuid)
	if err != nil {
		return nil, err
	}
	return Encrypt(data, key)
}

func DecryptWithUUIDKey(data []byte, _uuid uuid.UUID) ([]byte, error) {
	key, err := uuidToBytes(_uuid)
	if err != nil {
		return nil, err
	}
	return Decrypt(data, key)
}

func uuidToBytes(_uuid uuid.UUID) ([]byte, error) {
	bytes, err := _uuid.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to convert encryption key (uuid) to bytes")
	}

	return bytes, nil
}

// Encrypt seals data with AES-GCM. The nonce is prepended to the ciphertext.
func Encrypt(data []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "Unable to generate nonce")
	}

	return gcm.Seal(nonce, nonce, data, nil), nil
}

// Decrypt opens data produced by Encrypt. Key must be 16, 24 or 32 bytes.
func Decrypt(data []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext is shorter than the nonce")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	decrypted, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to decrypt")
	}

	return decrypted, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid encryption key")
	}
	return cipher.NewGCM(c)
}
