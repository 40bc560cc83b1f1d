package rest

import (
	"fmt"
	"sync"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"voyager.com/roguepoker/caching"
	"voyager.com/roguepoker/effects"
	"voyager.com/roguepoker/game"
	"voyager.com/roguepoker/logging"
	"voyager.com/roguepoker/util"
	"voyager.com/roguepoker/util/random"
)

var managerLogger = log.With().Str("logger_name", "rest::manager").Logger()

const slotCacheSize = 1024

// liveGame serializes the requests of one game.
type liveGame struct {
	mu sync.Mutex
	g  *game.Game
}

// Manager hosts independent single-player games. Save slots are written to the store.
type Manager struct {
	games    cmap.ConcurrentMap
	store    game.PersistGameState
	slots    *caching.GameSlotCache
	listener game.EventListener
	opts     []game.Option
}

// NewManager creates a manager. listener may be nil. opts are applied to every created or loaded game.
func NewManager(store game.PersistGameState, listener game.EventListener, opts ...game.Option) (*Manager, error) {
	slots, err := caching.NewGameSlotCache(slotCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "Error while creating save slot cache")
	}
	return &Manager{
		games:    cmap.New(),
		store:    store,
		slots:    slots,
		listener: listener,
		opts:     append([]game.Option{game.WithDispatcher(effects.NewRegistry())}, opts...),
	}, nil
}

func (m *Manager) gameOptions(extra ...game.Option) []game.Option {
	opts := append([]game.Option{}, m.opts...)
	if m.listener != nil {
		opts = append(opts, game.WithEventListener(m.listener))
	}
	return append(opts, extra...)
}

// NewGame starts a game on the given deck. A zero seed picks a random one.
func (m *Manager) NewGame(deck game.DeckType, seed int64) *game.Game {
	g := game.New(m.gameOptions(game.WithDeckType(deck), game.WithRandSource(random.NewSource(seed)))...)
	m.add(g)
	return g
}

func (m *Manager) add(g *game.Game) {
	m.games.Set(g.GameID(), &liveGame{g: g})
	util.Metrics.SetActiveGamesCount(m.games.Count())
}

// WithGame runs fn while holding the game's lock.
func (m *Manager) WithGame(gameID string, fn func(g *game.Game) error) error {
	v, ok := m.games.Get(gameID)
	if !ok {
		return game.GameNotFoundError{GameID: gameID}
	}
	live := v.(*liveGame)
	live.mu.Lock()
	defer live.mu.Unlock()
	return fn(live.g)
}

// Save writes the game to the store under slot.
func (m *Manager) Save(gameID string, slot string) error {
	if slot == "" {
		return game.ValidationError{Msg: "Save slot is required"}
	}
	return m.WithGame(gameID, func(g *game.Game) error {
		data, err := g.Save()
		if err != nil {
			return err
		}
		if err := m.store.Save(slot, data); err != nil {
			return errors.Wrapf(err, "Error while saving game [%s] to slot [%s]", gameID, slot)
		}
		if err := m.slots.Add(gameID, slot); err != nil {
			return err
		}
		managerLogger.Info().Str(logging.GameIDKey, gameID).Msg(fmt.Sprintf("Game saved to slot %s", slot))
		return nil
	})
}

// Load restores the game saved in slot and makes it live, replacing a live game with the same ID.
func (m *Manager) Load(slot string) (*game.Game, error) {
	data, err := m.store.Load(slot)
	if err != nil {
		return nil, err
	}
	g, err := game.Load(data, m.gameOptions()...)
	if err != nil {
		return nil, err
	}
	m.add(g)
	if err := m.slots.Add(g.GameID(), slot); err != nil {
		return nil, err
	}
	managerLogger.Info().Str(logging.GameIDKey, g.GameID()).Msg(fmt.Sprintf("Game loaded from slot %s", slot))
	return g, nil
}

// Slot returns the save slot a live game was last saved to or loaded from.
func (m *Manager) Slot(gameID string) (string, bool) {
	return m.slots.GameIDToSlot(gameID)
}

// Slots lists the saved slots.
func (m *Manager) Slots() ([]string, error) {
	return m.store.List()
}

// EndGame drops a live game. Its save slots are kept.
func (m *Manager) EndGame(gameID string) error {
	if !m.games.Has(gameID) {
		return game.GameNotFoundError{GameID: gameID}
	}
	m.games.Remove(gameID)
	m.slots.Remove(gameID)
	util.Metrics.SetActiveGamesCount(m.games.Count())
	managerLogger.Info().Str(logging.GameIDKey, gameID).Msg("Game ended")
	return nil
}

func (m *Manager) Count() int {
	return m.games.Count()
}

func (m *Manager) GameIDs() []string {
	return m.games.Keys()
}
