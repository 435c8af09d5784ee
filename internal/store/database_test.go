package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/calvinwijaya/higher-lower-be/internal/db"
	"github.com/calvinwijaya/higher-lower-be/internal/game"
)

func TestDatabaseStore_Results(t *testing.T) {
	database, err := db.NewDatabase(db.DriverSQLite, filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	var rs ResultStore = NewDatabaseStore(database)
	ctx := context.Background()

	g := game.NewHigherLowerGame()
	for !g.IsOver() {
		g.Guess(game.Higher)
	}
	res, err := g.Result()
	if err != nil {
		t.Fatal(err)
	}
	if err := rs.RecordResult(ctx, res); err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}

	recent, err := rs.RecentResults(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].GameID != g.ID || recent[0].ID == "" {
		t.Fatalf("unexpected results %+v", recent)
	}

	stats, err := rs.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.GamesWon+stats.GamesLost != 1 || stats.BestRound != res.Rounds {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
