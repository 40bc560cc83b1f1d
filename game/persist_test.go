package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyager.com/roguepoker/encryption"
)

func checkStore(t *testing.T, store PersistGameState) {
	t.Helper()
	_, err := store.Load("missing")
	require.Error(t, err)
	assert.IsType(t, GameNotFoundError{}, err)

	g := newTestGame(t, WithGameID("g1"))
	_, err = g.Discard([]int{0, 1})
	require.NoError(t, err)
	require.NoError(t, g.SaveTo(store))
	require.NoError(t, newTestGame(t, WithGameID("g0")).SaveTo(store))

	ids, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"g0", "g1"}, ids)

	loaded, err := LoadFrom(store, "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", loaded.GameID())
	assert.Equal(t, 2, loaded.State().Player.Discards)
	assert.Equal(t, g.State().Player.Hand, loaded.State().Player.Hand)

	require.NoError(t, store.Remove("g1"))
	require.NoError(t, store.Remove("g1"))
	ids, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"g0"}, ids)
}

func TestMemoryGameStore(t *testing.T) {
	checkStore(t, NewMemoryGameStore())
}

func TestFileGameStore(t *testing.T) {
	store, err := NewFileGameStore(t.TempDir())
	require.NoError(t, err)
	checkStore(t, store)
}

func TestEncryptedGameStore(t *testing.T) {
	inner := NewMemoryGameStore()
	checkStore(t, NewEncryptedGameStore(inner, uuid.New()))

	raw, err := inner.Load("g0")
	require.NoError(t, err)
	assert.True(t, encryption.IsSealed(raw))
}

func TestEncryptedGameStoreWrongKey(t *testing.T) {
	inner := NewMemoryGameStore()
	require.NoError(t, newTestGame(t, WithGameID("g")).SaveTo(NewEncryptedGameStore(inner, uuid.New())))

	_, err := NewEncryptedGameStore(inner, uuid.New()).Load("g")
	assert.Error(t, err)

	plain := NewMemoryGameStore()
	require.NoError(t, newTestGame(t, WithGameID("p")).SaveTo(plain))
	_, err = NewEncryptedGameStore(plain, uuid.New()).Load("p")
	assert.Error(t, err)
}
