package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetPlayerLeaders returns the top players for one category
// Path: /api/stats_leaders/{category} (ppg, rpg, apg, spg, bpg, fgp, 3pp, ftp)
func (h *Handler) GetPlayerLeaders(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	ranked, err := h.leaders.PlayerLeaders(r.Context(), category)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ranked)
}

// GetAllPlayerLeaders returns the top players for every category keyed by category name
func (h *Handler) GetAllPlayerLeaders(w http.ResponseWriter, r *http.Request) {
	all, err := h.leaders.AllPlayerLeaders(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, all)
}

// GetTeamLeaders returns the top teams for one category
// Path: /api/team_stats_leaders/{category}
func (h *Handler) GetTeamLeaders(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	ranked, err := h.leaders.TeamLeaders(r.Context(), category)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ranked)
}

// GetAllTeamLeaders returns the top teams for every category keyed by category name
func (h *Handler) GetAllTeamLeaders(w http.ResponseWriter, r *http.Request) {
	all, err := h.leaders.AllTeamLeaders(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, all)
}
