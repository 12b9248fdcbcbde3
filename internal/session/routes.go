package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/chronos-quiz/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Start)

	r.Group(func(r chi.Router) {
		r.Use(auth.SessionMiddleware)

		r.Get("/current", h.Current)
		r.Post("/current/answers", h.SubmitAnswer)
		r.Post("/current/restart", h.Restart)
		r.Post("/current/end", h.End)
	})
	return r
}
