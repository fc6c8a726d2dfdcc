// Package handlers provides HTTP handlers for startup record access.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/venturelens/venturelens/internal/modules/startups"
)

// Handler handles startup record HTTP requests
type Handler struct {
	repo    *startups.Repository
	syncSvc *startups.SyncService
	log     zerolog.Logger
}

// NewHandler creates a new startups handler
func NewHandler(repo *startups.Repository, syncSvc *startups.SyncService, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		syncSvc: syncSvc,
		log:     log.With().Str("handler", "startups").Logger(),
	}
}

// HandleList returns all stored startup records
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

// HandleGet returns a single startup record by ID
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.repo.Get(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		h.writeError(w, http.StatusNotFound, "startup not found")
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// HandleSync triggers an immediate refresh from the analysis backend
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	records, err := h.syncSvc.Refresh(r.Context())
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"count":  len(records),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
