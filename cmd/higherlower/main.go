package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/calvinwijaya/higher-lower-be/internal/config"
	"github.com/calvinwijaya/higher-lower-be/internal/game"
	"github.com/calvinwijaya/higher-lower-be/internal/logging"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

func main() {
	seed := flag.Int64("seed", 0, "Shuffle seed for a reproducible game, 0 for random")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	logCfg, err := config.LoadLog()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log configuration")
	}
	// stdout belongs to the game
	logging.Setup(os.Stderr, logCfg)

	if *noColor {
		pterm.DisableColor()
	}

	var opts []game.Option
	if *seed != 0 {
		opts = append(opts, game.WithRand(rand.New(rand.NewSource(*seed))))
	}

	g := game.NewHigherLowerGame(opts...)
	log.Debug().Str("gameId", g.ID).Int64("seed", *seed).Msg("game started")

	play(os.Stdin, os.Stdout, g)
}
