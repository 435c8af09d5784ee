package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/calvinwijaya/higher-lower-be/internal/game"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Database struct {
	db     *sql.DB
	driver string
}

type ResultStats struct {
	GamesPlayed int
	GamesWon    int
	GamesLost   int
	BestRound   int
}

// NewDatabase opens the results database. driver is either "sqlite3", with a
// file path as dsn, or "postgres", with a connection string.
func NewDatabase(driver, dsn string) (*Database, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := initTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Database{db: db, driver: driver}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS game_results (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			status TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			picked_cards TEXT NOT NULL,
			last_card TEXT,
			revealed_card TEXT,
			finished_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating game_results table: %w", err)
	}

	return nil
}

// Driver returns the name of the SQL driver in use
func (d *Database) Driver() string {
	return d.driver
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// SaveResult stores the result of a finished game
func (d *Database) SaveResult(ctx context.Context, r game.Result) error {
	picked, err := json.Marshal(r.PickedCards)
	if err != nil {
		return err
	}
	last, err := encodeCard(r.LastCard)
	if err != nil {
		return err
	}
	revealed, err := encodeCard(r.RevealedCard)
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO game_results (id, game_id, status, rounds, picked_cards, last_card, revealed_card, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		r.ID, r.GameID, string(r.Status), r.Rounds, string(picked), last, revealed, r.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("error saving result %s: %w", r.ID, err)
	}
	return nil
}

// RecentResults returns up to limit results, newest first
func (d *Database) RecentResults(ctx context.Context, limit int) ([]game.Result, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, game_id, status, rounds, picked_cards, last_card, revealed_card, finished_at
		FROM game_results ORDER BY id DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying results: %w", err)
	}
	defer rows.Close()

	results := []game.Result{}
	for rows.Next() {
		var (
			r              game.Result
			status, picked string
			last, revealed sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.GameID, &status, &r.Rounds, &picked, &last, &revealed, &r.FinishedAt); err != nil {
			return nil, err
		}

		r.Status = game.GameStatus(status)
		if err := json.Unmarshal([]byte(picked), &r.PickedCards); err != nil {
			return nil, fmt.Errorf("error decoding picked cards of %s: %w", r.ID, err)
		}
		if r.LastCard, err = decodeCard(last); err != nil {
			return nil, err
		}
		if r.RevealedCard, err = decodeCard(revealed); err != nil {
			return nil, err
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

// Stats aggregates every recorded result
func (d *Database) Stats(ctx context.Context) (ResultStats, error) {
	var stats ResultStats

	err := d.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = $1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = $2 THEN 1 ELSE 0 END), 0),
			COALESCE(MAX(rounds), 0)
		FROM game_results
	`, string(game.Won), string(game.Lost)).Scan(
		&stats.GamesPlayed,
		&stats.GamesWon,
		&stats.GamesLost,
		&stats.BestRound,
	)
	if err != nil {
		return ResultStats{}, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

func encodeCard(c *game.Card) (sql.NullString, error) {
	if c == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeCard(s sql.NullString) (*game.Card, error) {
	if !s.Valid {
		return nil, nil
	}
	var c game.Card
	if err := json.Unmarshal([]byte(s.String), &c); err != nil {
		return nil, fmt.Errorf("error decoding card %q: %w", s.String, err)
	}
	return &c, nil
}
