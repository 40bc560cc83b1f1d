package game

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const createSaveTable = `CREATE TABLE IF NOT EXISTS game_save (
	game_id    TEXT PRIMARY KEY,
	state      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresGameStore keeps one row per game in the game_save table.
type PostgresGameStore struct {
	db *sqlx.DB
}

// NewPostgresGameStore connects with the lib/pq driver and creates the table when missing.
func NewPostgresGameStore(connStr string) (*PostgresGameStore, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to connect to postgres")
	}
	return NewPostgresGameStoreWithDB(db)
}

func NewPostgresGameStoreWithDB(db *sqlx.DB) (*PostgresGameStore, error) {
	if _, err := db.Exec(createSaveTable); err != nil {
		return nil, errors.Wrap(err, "Unable to create game_save table")
	}
	return &PostgresGameStore{db: db}, nil
}

func (p *PostgresGameStore) Load(gameID string) ([]byte, error) {
	var state []byte
	err := p.db.Get(&state, "SELECT state FROM game_save WHERE game_id = $1", gameID)
	if err == sql.ErrNoRows {
		return nil, GameNotFoundError{GameID: gameID}
	} else if err != nil {
		return nil, errors.Wrapf(err, "Error loading game [%s] from postgres", gameID)
	}
	return state, nil
}

func (p *PostgresGameStore) Save(gameID string, state []byte) error {
	_, err := p.db.Exec(`INSERT INTO game_save (game_id, state, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (game_id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`, gameID, state)
	if err != nil {
		return errors.Wrapf(err, "Error saving game [%s] to postgres", gameID)
	}
	return nil
}

func (p *PostgresGameStore) Remove(gameID string) error {
	_, err := p.db.Exec("DELETE FROM game_save WHERE game_id = $1", gameID)
	if err != nil {
		return errors.Wrapf(err, "Error removing game [%s] from postgres", gameID)
	}
	return nil
}

func (p *PostgresGameStore) List() ([]string, error) {
	var ids []string
	err := p.db.Select(&ids, "SELECT game_id FROM game_save ORDER BY game_id")
	if err != nil {
		return nil, errors.Wrap(err, "Error listing games in postgres")
	}
	return ids, nil
}

func (p *PostgresGameStore) Close() error {
	return p.db.Close()
}
