package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all startup record routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/startups", func(r chi.Router) {
		r.Get("/", h.HandleList)      // List stored records
		r.Get("/{id}", h.HandleGet)   // Single record
		r.Post("/sync", h.HandleSync) // Trigger immediate refresh
	})
}
