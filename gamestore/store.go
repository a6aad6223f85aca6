// Package gamestore keeps finished games in a sqlite database.
package gamestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var ErrNotFound = errors.New("game not found")

// GameRecord is one finished game. Winner is "white", "black" or "draw".
// Position is the final position as written by game.MarshalPositionYAML.
type GameRecord struct {
	ID        string
	P1Kind    string
	P2Kind    string
	Winner    string
	Plies     int
	Position  string
	StartedAt time.Time
	EndedAt   time.Time
}

type Store struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	p1_kind TEXT,
	p2_kind TEXT,
	winner TEXT,
	plies INTEGER,
	position TEXT,
	started_at TEXT,
	ended_at TEXT
);
`

// Open opens, and creates if needed, the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating games table: %w", err)
	}
	log.Debug().Str("path", path).Msg("gamestore-opened")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isBusy(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}

// SaveGame inserts or replaces a game. Writes that find the database locked
// by another writer are retried.
func (s *Store) SaveGame(ctx context.Context, rec GameRecord) error {
	const insertSQL = `
	INSERT OR REPLACE INTO games (id, p1_kind, p2_kind, winner, plies, position, started_at, ended_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	return retry.Do(
		func() error {
			_, err := s.db.ExecContext(ctx, insertSQL,
				rec.ID, rec.P1Kind, rec.P2Kind, rec.Winner, rec.Plies, rec.Position,
				rec.StartedAt.UTC().Format(time.RFC3339Nano),
				rec.EndedAt.UTC().Format(time.RFC3339Nano))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("n", n).Str("game-id", rec.ID).Msg("gamestore-busy-retrying")
		}),
	)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (GameRecord, error) {
	var rec GameRecord
	var started, ended string
	err := row.Scan(&rec.ID, &rec.P1Kind, &rec.P2Kind, &rec.Winner, &rec.Plies,
		&rec.Position, &started, &ended)
	if err != nil {
		return rec, err
	}
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return rec, err
	}
	if rec.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
		return rec, err
	}
	return rec, nil
}

const selectColumns = `SELECT id, p1_kind, p2_kind, winner, plies, position, started_at, ended_at FROM games`

// Game returns the game with the given ID, or ErrNotFound.
func (s *Store) Game(ctx context.Context, id string) (*GameRecord, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListGames returns up to limit games, most recently finished first.
func (s *Store) ListGames(ctx context.Context, limit int) ([]GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY ended_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []GameRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of stored games.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}
