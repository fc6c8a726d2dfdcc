package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analytics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/dashboard", h.HandleGetDashboard)   // Full dashboard snapshot
		r.Get("/metrics", h.HandleGetMetrics)       // Six-dimension averages
		r.Get("/risk-flags", h.HandleGetRiskFlags)  // Top-3 risk roll-up
		r.Get("/investment", h.HandleGetInvestment) // Investment projection

		// Chart-ready datasets
		r.Route("/charts", func(r chi.Router) {
			r.Get("/score-distribution", h.HandleGetScoreDistribution)
			r.Get("/recommendations", h.HandleGetRecommendations)
			r.Get("/risk-distribution", h.HandleGetRiskDistribution)
			r.Get("/activity", h.HandleGetActivityTimeline)
			r.Get("/radar", h.HandleGetRadar)
		})
	})
}
