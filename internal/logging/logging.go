package logging

import (
	"io"
	"os"
	"strings"

	"github.com/calvinwijaya/higher-lower-be/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger
func Init(cfg config.LogConfig) {
	Setup(os.Stdout, cfg)
}

// Setup points the global logger at out
func Setup(out io.Writer, cfg config.LogConfig) {
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel falls back to info for unknown or empty levels
func ParseLevel(v string) zerolog.Level {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(v)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
