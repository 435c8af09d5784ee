package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/calvinwijaya/higher-lower-be/internal/api"
	"github.com/calvinwijaya/higher-lower-be/internal/config"
	"github.com/calvinwijaya/higher-lower-be/internal/db"
	"github.com/calvinwijaya/higher-lower-be/internal/logging"
	"github.com/calvinwijaya/higher-lower-be/internal/store"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Command line flags override the environment
	flag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "Server listen address")
	flag.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Results database driver (sqlite3 or postgres)")
	flag.StringVar(&cfg.DBDSN, "db", cfg.DBDSN, "Results database DSN, empty to keep results in memory")
	flag.StringVar(&cfg.FrontendURL, "frontend", cfg.FrontendURL, "Frontend URL for CORS")
	flag.Parse()

	logging.Init(cfg.Log)

	// Initialize the store
	gameStore := store.NewMemoryStore()
	var results store.ResultStore = gameStore
	log.Info().Msg("in-memory game store initialized")

	// Initialize the database
	if database, err := openDatabase(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to initialize database, continuing without database persistence")
	} else if database != nil {
		log.Info().Str("driver", database.Driver()).Msg("database initialized")
		defer database.Close()
		results = store.NewDatabaseStore(database)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize WebSocket hub
	hub := api.NewHub()
	go hub.Run(ctx)
	log.Info().Msg("websocket hub started")

	handlers := api.NewHandlers(gameStore, results, hub)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      c.Handler(handlers.NewRouter()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Block until we receive a termination signal
	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openDatabase returns nil without error when no DSN is configured
func openDatabase(cfg config.ServerConfig) (*db.Database, error) {
	if cfg.DBDSN == "" {
		return nil, nil
	}

	if cfg.DBDriver == db.DriverSQLite {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0755); err != nil {
			return nil, err
		}
	}

	return db.NewDatabase(cfg.DBDriver, cfg.DBDSN)
}
