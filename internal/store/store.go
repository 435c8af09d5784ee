package store

import (
	"context"
	"errors"

	"github.com/calvinwijaya/higher-lower-be/internal/game"
)

var ErrGameNotFound = errors.New("game not found")

// Store defines the interface for live game sessions
type Store interface {
	// SaveGame saves a game to the store
	SaveGame(g *game.HigherLowerGame) error

	// GetGame returns the player's view of a game
	GetGame(id string) (game.GameView, error)

	// UpdateGame runs fn against the game while holding the store's write lock,
	// so actions on a game never interleave
	UpdateGame(id string, fn func(g *game.HigherLowerGame) error) (*game.HigherLowerGame, error)

	// DeleteGame removes a game from the store
	DeleteGame(id string) error
}

// Stats aggregates finished games
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	GamesWon    int `json:"gamesWon"`
	GamesLost   int `json:"gamesLost"`
	BestRound   int `json:"bestRound"`
}

// ResultStore records finished games
type ResultStore interface {
	// RecordResult stores the result of a finished game
	RecordResult(ctx context.Context, r game.Result) error

	// RecentResults returns up to limit results, newest first
	RecentResults(ctx context.Context, limit int) ([]game.Result, error)

	// Stats aggregates every recorded result
	Stats(ctx context.Context) (Stats, error)
}
