package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// GetPlayer returns the first matching player's season line as a one-element array
// Path: /player/{name}, name matched case-insensitively against full names
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	detail, err := h.leaders.PlayerDetail(r.Context(), name)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, detail)
}
