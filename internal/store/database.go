package store

import (
	"context"

	"github.com/calvinwijaya/higher-lower-be/internal/db"
	"github.com/calvinwijaya/higher-lower-be/internal/game"
)

var _ ResultStore = (*DatabaseStore)(nil)

// DatabaseStore is a database implementation of the result ledger
type DatabaseStore struct {
	db *db.Database
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.Database) *DatabaseStore {
	return &DatabaseStore{
		db: database,
	}
}

// RecordResult saves a finished game to the database
func (s *DatabaseStore) RecordResult(ctx context.Context, r game.Result) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return s.db.SaveResult(ctx, r)
}

// RecentResults returns up to limit results, newest first
func (s *DatabaseStore) RecentResults(ctx context.Context, limit int) ([]game.Result, error) {
	return s.db.RecentResults(ctx, limit)
}

// Stats aggregates every recorded result
func (s *DatabaseStore) Stats(ctx context.Context) (Stats, error) {
	st, err := s.db.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		GamesPlayed: st.GamesPlayed,
		GamesWon:    st.GamesWon,
		GamesLost:   st.GamesLost,
		BestRound:   st.BestRound,
	}, nil
}
