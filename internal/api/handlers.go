package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/calvinwijaya/higher-lower-be/internal/game"
	"github.com/calvinwijaya/higher-lower-be/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
)

// Handlers contains all the API handlers
type Handlers struct {
	store   store.Store
	results store.ResultStore
	hub     *Hub
}

// NewHandlers creates a new instance of Handlers. hub may be nil.
func NewHandlers(store store.Store, results store.ResultStore, hub *Hub) *Handlers {
	return &Handlers{
		store:   store,
		results: results,
		hub:     hub,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Game endpoints
	r.HandleFunc("/api/game/new", h.NewGame).Methods(http.MethodPost)
	r.HandleFunc("/api/game/{id}/guess", h.Guess).Methods(http.MethodPost)
	r.HandleFunc("/api/game/{id}/reset", h.Reset).Methods(http.MethodPost)
	r.HandleFunc("/api/game/{id}", h.GetGame).Methods(http.MethodGet)
	r.HandleFunc("/api/game/{id}", h.DeleteGame).Methods(http.MethodDelete)

	// Ledger endpoints
	r.HandleFunc("/api/results", h.ListResults).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", h.GetStats).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	// WebSocket endpoint
	if h.hub != nil {
		r.HandleFunc("/ws", h.hub.WebSocketHandler)
	}
}

// NewRouter builds the router with every route and the request logger
func (h *Handlers) NewRouter() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	r.Use(LoggingMiddleware)
	return r
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

func storeErrorResponse(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrGameNotFound) {
		errorResponse(w, http.StatusNotFound, "Game not found")
		return
	}
	log.Error().Err(err).Msg("store failure")
	errorResponse(w, http.StatusInternalServerError, "Failed to update game")
}

// NewGame starts a new game
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	g := game.NewHigherLowerGame()

	if err := h.store.SaveGame(g); err != nil {
		storeErrorResponse(w, err)
		return
	}

	log.Info().Str("gameId", g.ID).Msg("game started")
	response(w, http.StatusCreated, g.GetGameState())
}

// GetGame returns the current state of a game
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.store.GetGame(mux.Vars(r)["id"])
	if err != nil {
		storeErrorResponse(w, err)
		return
	}

	response(w, http.StatusOK, view)
}

// Guess evaluates a higher/lower guess. Guesses on a finished game are
// ignored and reported with applied=false.
func (h *Handlers) Guess(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req struct {
		Direction string `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	dir, err := game.ParseDirection(req.Direction)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		applied  bool
		finished bool
		result   game.Result
		view     game.GameView
	)
	_, err = h.store.UpdateGame(gameID, func(g *game.HigherLowerGame) error {
		wasPlaying := g.Status == game.Playing
		applied = g.Guess(dir)
		if applied && wasPlaying && g.IsOver() {
			finished = true
			result, _ = g.Result()
		}
		view = g.GetGameState()
		// pushed under the store lock so watchers see updates in order
		if applied {
			h.broadcast(view)
		}
		return nil
	})
	if err != nil {
		storeErrorResponse(w, err)
		return
	}

	if finished {
		h.recordResult(r, result)
	}

	response(w, http.StatusOK, map[string]interface{}{
		"applied": applied,
		"game":    view,
	})
}

// Reset starts the game over with a fresh deck
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	var view game.GameView
	_, err := h.store.UpdateGame(mux.Vars(r)["id"], func(g *game.HigherLowerGame) error {
		g.Reset()
		view = g.GetGameState()
		h.broadcast(view)
		return nil
	})
	if err != nil {
		storeErrorResponse(w, err)
		return
	}

	response(w, http.StatusOK, view)
}

// DeleteGame drops a game session
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteGame(mux.Vars(r)["id"]); err != nil {
		storeErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListResults returns the most recent finished games
func (h *Handlers) ListResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxResultsLimit)
	}

	results, err := h.results.RecentResults(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to load results")
		errorResponse(w, http.StatusInternalServerError, "Error retrieving results")
		return
	}

	response(w, http.StatusOK, results)
}

// GetStats returns aggregate statistics over finished games
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.results.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute stats")
		errorResponse(w, http.StatusInternalServerError, "Error retrieving statistics")
		return
	}

	response(w, http.StatusOK, stats)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) recordResult(r *http.Request, result game.Result) {
	result.ID = store.NewID()
	if err := h.results.RecordResult(r.Context(), result); err != nil {
		// the game itself is fine, only the ledger entry is lost
		log.Error().Err(err).Str("gameId", result.GameID).Msg("failed to record result")
		return
	}
	log.Info().
		Str("gameId", result.GameID).
		Str("status", string(result.Status)).
		Int("rounds", result.Rounds).
		Msg("game finished")
}

func (h *Handlers) broadcast(view game.GameView) {
	if h.hub != nil {
		h.hub.BroadcastGameUpdate(view)
	}
}
