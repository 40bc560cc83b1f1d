package caching

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// GameSlotCache maps live game IDs to save slot names in both directions.
type GameSlotCache struct {
	gameIDToSlot *lru.Cache
	slotToGameID *lru.Cache
}

func NewGameSlotCache(size int) (*GameSlotCache, error) {
	gameIDToSlot, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize gameIDToSlot cache")
	}
	slotToGameID, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize slotToGameID cache")
	}
	return &GameSlotCache{
		gameIDToSlot: gameIDToSlot,
		slotToGameID: slotToGameID,
	}, nil
}

// Add binds a slot to a game. A slot that pointed at another game is rebound.
func (c *GameSlotCache) Add(gameID string, slot string) error {
	if gameID == "" {
		return fmt.Errorf("Invalid game ID [%s]", gameID)
	} else if slot == "" {
		return fmt.Errorf("Invalid save slot [%s]", slot)
	}

	if previous, ok := c.SlotToGameID(slot); ok && previous != gameID {
		c.gameIDToSlot.Remove(previous)
	}
	if previous, ok := c.GameIDToSlot(gameID); ok && previous != slot {
		c.slotToGameID.Remove(previous)
	}
	c.gameIDToSlot.Add(gameID, slot)
	c.slotToGameID.Add(slot, gameID)
	return nil
}

func (c *GameSlotCache) GameIDToSlot(gameID string) (string, bool) {
	v, exists := c.gameIDToSlot.Get(gameID)
	if !exists {
		return "", false
	}
	return v.(string), true
}

func (c *GameSlotCache) SlotToGameID(slot string) (string, bool) {
	v, exists := c.slotToGameID.Get(slot)
	if !exists {
		return "", false
	}
	return v.(string), true
}

func (c *GameSlotCache) Remove(gameID string) {
	if slot, ok := c.GameIDToSlot(gameID); ok {
		c.slotToGameID.Remove(slot)
	}
	c.gameIDToSlot.Remove(gameID)
}

func (c *GameSlotCache) Len() int {
	return c.gameIDToSlot.Len()
}
