package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

type Handler struct {
	pipeline  Pipeline
	sourceDir string
}

func NewHandler(p Pipeline, sourceDir string) *Handler {
	return &Handler{pipeline: p, sourceDir: sourceDir}
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.pipeline.GenerateAndSave(r.Context(), h.sourceDir, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCount), errors.Is(err, ErrNoSources):
			config.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrCountMismatch), errors.Is(err, quiz.ErrMalformedQuiz):
			config.Error(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrProvider):
			config.Error(w, http.StatusBadGateway, "failed to generate quiz")
		default:
			log.WithError(err).Error("Failed to generate quiz")
			config.Error(w, http.StatusInternalServerError, "failed to generate quiz")
		}
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}
