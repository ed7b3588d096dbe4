package wizard

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers wizard session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/wizard-session", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/project", h.SubmitProject)
		r.Post("/{id}/answers", h.SubmitAnswers)
		r.Post("/{id}/back", h.Back)
		r.Post("/{id}/reset", h.Reset)
		r.Get("/{id}/result", h.GetResult)
		r.Delete("/{id}", h.DeleteSession)
	})
}
