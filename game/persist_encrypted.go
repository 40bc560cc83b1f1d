package game

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"voyager.com/roguepoker/encryption"
)

// EncryptedGameStore seals saves with AES-GCM before handing them to another store.
type EncryptedGameStore struct {
	inner PersistGameState
	key   uuid.UUID
}

func NewEncryptedGameStore(inner PersistGameState, key uuid.UUID) *EncryptedGameStore {
	return &EncryptedGameStore{inner: inner, key: key}
}

func (e *EncryptedGameStore) Load(gameID string) ([]byte, error) {
	sealed, err := e.inner.Load(gameID)
	if err != nil {
		return nil, err
	}
	data, err := encryption.OpenSave(sealed, e.key)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to decrypt game [%s]", gameID)
	}
	return data, nil
}

func (e *EncryptedGameStore) Save(gameID string, state []byte) error {
	sealed, err := encryption.SealSave(state, e.key)
	if err != nil {
		return errors.Wrapf(err, "Unable to encrypt game [%s]", gameID)
	}
	return e.inner.Save(gameID, sealed)
}

func (e *EncryptedGameStore) Remove(gameID string) error {
	return e.inner.Remove(gameID)
}

func (e *EncryptedGameStore) List() ([]string, error) {
	return e.inner.List()
}
