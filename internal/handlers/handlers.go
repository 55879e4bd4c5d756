package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/internal/leaders"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/leaderboard"
	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

const serviceName = "stats-gateway"

// Handler contains dependencies for HTTP handlers
type Handler struct {
	leaders   *leaders.Service
	scores    contracts.ScoreboardProvider
	publisher contracts.ScoreboardPublisher
	log       *zap.Logger

	publishTimeout time.Duration
	inflight       sync.WaitGroup
}

// NewHandler creates a new handler with dependencies. publisher may be nil.
func NewHandler(svc *leaders.Service, scores contracts.ScoreboardProvider, publisher contracts.ScoreboardPublisher, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		leaders:        svc,
		scores:         scores,
		publisher:      publisher,
		log:            log.Named("handlers"),
		publishTimeout: 5 * time.Second,
	}
}

// Mount registers every route on r
func (h *Handler) Mount(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Get("/player/{name}", h.GetPlayer)
	r.Get("/team_stats/{team_id}", h.GetTeamStats)

	r.Route("/api", func(r chi.Router) {
		r.Get("/live_scores", h.GetLiveScores)

		r.Get("/stats_leaders/all", h.GetAllPlayerLeaders)
		r.Get("/stats_leaders/{category}", h.GetPlayerLeaders)

		r.Get("/team_stats_leaders/all", h.GetAllTeamLeaders)
		r.Get("/team_stats_leaders/{category}", h.GetTeamLeaders)
	})
}

// Wait blocks until background scoreboard publishes have finished
func (h *Handler) Wait() {
	h.inflight.Wait()
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"service":    serviceName,
		"season":     h.leaders.Season(),
		"publishing": h.publisher != nil,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("encoding response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		fields := []zap.Field{
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		}
		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		if status >= 500 {
			h.log.Error(message, fields...)
		} else {
			h.log.Debug(message, fields...)
		}
	}

	h.respondJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondServiceError maps leaders service and upstream failures to HTTP responses
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, leaders.ErrPlayerNotFound):
		h.respondError(w, r, http.StatusNotFound, "Player not found", err)
	case errors.Is(err, leaders.ErrNoSeasonStats):
		h.respondError(w, r, http.StatusNotFound, "No stats available for this season", err)
	case errors.Is(err, leaders.ErrUnknownCategory):
		h.respondError(w, r, http.StatusNotFound, "unknown stat category", err)
	case errors.Is(err, leaders.ErrInvalidTeamID):
		h.respondError(w, r, http.StatusBadRequest, "team_id must be a positive integer", err)
	case errors.Is(err, leaderboard.ErrMissingColumn),
		errors.Is(err, leaderboard.ErrNotNumeric),
		errors.Is(err, leaderboard.ErrRowShape),
		errors.Is(err, leaderboard.ErrInvalidLimit):
		h.respondError(w, r, http.StatusInternalServerError, "unexpected upstream data", err)
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, r, http.StatusGatewayTimeout, "upstream request timed out", err)
	default:
		h.respondError(w, r, http.StatusBadGateway, "upstream request failed", err)
	}
}
