package game

import (
	"sort"
	"sync"
)

type MemoryGameStore struct {
	activeGames map[string][]byte
	lock        sync.RWMutex
}

func NewMemoryGameStore() *MemoryGameStore {
	return &MemoryGameStore{
		activeGames: make(map[string][]byte),
	}
}

func (m *MemoryGameStore) Load(gameID string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if stateBytes, ok := m.activeGames[gameID]; ok {
		return append([]byte(nil), stateBytes...), nil
	}
	return nil, GameNotFoundError{GameID: gameID}
}

func (m *MemoryGameStore) Save(gameID string, state []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.activeGames[gameID] = append([]byte(nil), state...)
	return nil
}

func (m *MemoryGameStore) Remove(gameID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if _, ok := m.activeGames[gameID]; ok {
		delete(m.activeGames, gameID)
	}
	return nil
}

func (m *MemoryGameStore) List() ([]string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	ids := make([]string, 0, len(m.activeGames))
	for id := range m.activeGames {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
