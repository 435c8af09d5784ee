package store

import (
	"context"
	"sync"

	"github.com/calvinwijaya/higher-lower-be/internal/game"
)

var (
	_ Store       = (*MemoryStore)(nil)
	_ ResultStore = (*MemoryStore)(nil)
)

// MemoryStore is an in-memory implementation of game and result storage
type MemoryStore struct {
	games   map[string]*game.HigherLowerGame
	results []game.Result // oldest first
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*game.HigherLowerGame),
	}
}

// SaveGame saves a game to the store
func (s *MemoryStore) SaveGame(g *game.HigherLowerGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[g.ID] = g
	return nil
}

// GetGame returns the player's view of a game. Games are only mutated under
// the write lock, so the read lock is enough for a consistent snapshot.
func (s *MemoryStore) GetGame(id string) (game.GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[id]
	if !exists {
		return game.GameView{}, ErrGameNotFound
	}

	return g.GetGameState(), nil
}

// UpdateGame applies fn to the game under the write lock
func (s *MemoryStore) UpdateGame(id string, fn func(g *game.HigherLowerGame) error) (*game.HigherLowerGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.games[id]
	if !exists {
		return nil, ErrGameNotFound
	}

	if err := fn(g); err != nil {
		return nil, err
	}

	return g, nil
}

// DeleteGame removes a game from the store
func (s *MemoryStore) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; !exists {
		return ErrGameNotFound
	}

	delete(s.games, id)
	return nil
}

// RecordResult appends a finished game to the in-memory ledger
func (s *MemoryStore) RecordResult(_ context.Context, r game.Result) error {
	if r.ID == "" {
		r.ID = NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, r)
	return nil
}

// RecentResults returns up to limit results, newest first
func (s *MemoryStore) RecentResults(_ context.Context, limit int) ([]game.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.results) {
		limit = len(s.results)
	}

	out := make([]game.Result, 0, limit)
	for i := len(s.results) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.results[i])
	}

	return out, nil
}

// Stats aggregates every recorded result
func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	for _, r := range s.results {
		stats.GamesPlayed++
		switch r.Status {
		case game.Won:
			stats.GamesWon++
		case game.Lost:
			stats.GamesLost++
		}
		if r.Rounds > stats.BestRound {
			stats.BestRound = r.Rounds
		}
	}

	return stats, nil
}
