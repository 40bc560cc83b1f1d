package game

// PersistGameState stores encoded games by game ID.
type PersistGameState interface {
	Load(gameID string) ([]byte, error)
	Save(gameID string, state []byte) error
	Remove(gameID string) error
	List() ([]string, error)
}

// SaveTo encodes the game and writes it to the store.
func (g *Game) SaveTo(store PersistGameState) error {
	data, err := g.Save()
	if err != nil {
		return err
	}
	err = store.Save(g.state.GameID, data)
	if err != nil {
		return err
	}
	g.logger.Debug().Msg("Game saved")
	return nil
}

// LoadFrom reads and decodes a game from the store.
func LoadFrom(store PersistGameState, gameID string, opts ...Option) (*Game, error) {
	data, err := store.Load(gameID)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithGameID(gameID))
	return Load(data, opts...)
}
