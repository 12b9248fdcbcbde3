package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/saulo-duarte/chronos-quiz/internal/aiquiz"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"github.com/saulo-duarte/chronos-quiz/internal/session"
)

type RouterConfig struct {
	SessionHandler *session.Handler
	AIQuizHandler  *aiquiz.Handler
	QuizHandler    *quiz.Handler
	CORSOrigins    []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/sessions", session.Routes(cfg.SessionHandler))
	r.Get("/quiz", cfg.SessionHandler.Summary)
	r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
	r.Mount("/attempts", quiz.Routes(cfg.QuizHandler))

	return r
}
