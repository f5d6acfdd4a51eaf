package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns stats routes. All routes require authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/weekly", h.Weekly)
		r.Get("/monthly", h.Monthly)
	})

	return r
}
