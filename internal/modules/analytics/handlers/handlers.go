// Package handlers provides HTTP handlers for portfolio analytics.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/venturelens/venturelens/internal/domain"
	"github.com/venturelens/venturelens/internal/modules/analytics"
)

// RecordSource supplies the record set aggregates are computed over.
// The sync service implements this with live-fetch + snapshot fallback.
type RecordSource interface {
	Records(ctx context.Context) ([]domain.StartupRecord, error)
}

// Handler handles analytics HTTP requests
type Handler struct {
	source  RecordSource
	service *analytics.Service
	log     zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(source RecordSource, service *analytics.Service, log zerolog.Logger) *Handler {
	return &Handler{
		source:  source,
		service: service,
		log:     log.With().Str("handler", "analytics").Logger(),
	}
}

// period reads the ?period= query parameter, defaulting to "all"
func period(r *http.Request) analytics.TimePeriod {
	p := analytics.TimePeriod(r.URL.Query().Get("period"))
	if !p.Valid() {
		return analytics.PeriodAll
	}
	return p
}

// dashboard fetches records and computes the snapshot for the request's period
func (h *Handler) dashboard(r *http.Request) (*analytics.DashboardSnapshot, error) {
	records, err := h.source.Records(r.Context())
	if err != nil {
		return nil, err
	}
	return h.service.Dashboard(records, period(r)), nil
}

// HandleGetDashboard returns the full dashboard snapshot
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// HandleGetMetrics returns the six-dimension aggregate metric averages
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.Metrics)
}

// HandleGetRiskFlags returns the top-3 risk category roll-up
func (h *Handler) HandleGetRiskFlags(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.RiskFlags)
}

// HandleGetInvestment returns the weighted investment/return projection
func (h *Handler) HandleGetInvestment(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.Investment)
}

// HandleGetScoreDistribution returns the score histogram buckets
func (h *Handler) HandleGetScoreDistribution(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.ScoreDistribution)
}

// HandleGetRecommendations returns the recommendation breakdown
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.Recommendations)
}

// HandleGetRiskDistribution returns the risk level breakdown
func (h *Handler) HandleGetRiskDistribution(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.RiskDistribution)
}

// HandleGetActivityTimeline returns the per-day creation counts
func (h *Handler) HandleGetActivityTimeline(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.ActivityTimeline)
}

// HandleGetRadar returns the average-metrics radar
func (h *Handler) HandleGetRadar(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard(r)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap.AverageMetricsRadar)
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
