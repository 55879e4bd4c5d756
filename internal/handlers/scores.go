package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/stats-gateway/pkg/models"
)

// GetLiveScores returns today's games from the live scoreboard
func (h *Handler) GetLiveScores(w http.ResponseWriter, r *http.Request) {
	board, err := h.scores.TodaysScoreboard(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	if h.publisher != nil {
		h.publishAsync(r.Context(), board)
	}

	h.respondJSON(w, http.StatusOK, board.LiveScores())
}

// publishAsync sends the snapshot to the stream without holding up the response.
// Failures are logged only.
func (h *Handler) publishAsync(parent context.Context, board *models.Scoreboard) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), h.publishTimeout)

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		defer cancel()

		if err := h.publisher.PublishScoreboard(ctx, board); err != nil {
			h.log.Warn("scoreboard publish failed",
				zap.Int("games", len(board.Scoreboard.Games)),
				zap.Error(err))
			return
		}
		h.log.Debug("scoreboard published", zap.Int("games", len(board.Scoreboard.Games)))
	}()
}
