// internal/api/routes.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepify/backend/internal/topics"
)

// RegisterRoutes mounts every endpoint on the router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		// Stateless relay endpoints, consumed by the browser client directly.
		r.Post("/generate-questions", h.generateQuestions)
		r.Post("/evaluate-answer", h.evaluateAnswer)

		r.Get("/topics", h.listTopics)

		// Server-held sessions, one per user token.
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.createSession)
			r.Route("/{token}", func(r chi.Router) {
				r.Get("/", h.getSession)
				r.Delete("/", h.deleteSession)
				r.Post("/answers", h.submitAnswer)
				r.Post("/skip", h.skipQuestion)
				r.Post("/review", h.reviewQuestion)
				r.Post("/next", h.nextQuestion)
				r.Get("/summary", h.getSummary)
			})
		})
	})
}

// listTopics serves the suggested-topic catalog.
// @Summary      List suggested topics
// @Description  Returns the suggested-topic catalog grouped by category, in display order.
// @Tags         Topics
// @Produce      json
// @Success      200  {array}  topics.Category
// @Router       /api/topics [get]
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, topics.Catalog())
}
