package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetTeamStats returns a franchise's year-by-year records
// Path: /team_stats/{team_id}
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(chi.URLParam(r, "team_id"), 10, 64)
	if err != nil || teamID <= 0 {
		h.respondError(w, r, http.StatusBadRequest, "team_id must be a positive integer", err)
		return
	}

	history, err := h.leaders.TeamHistory(r.Context(), teamID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, history)
}
