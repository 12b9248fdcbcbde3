package quiz

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
)

type Handler struct {
	service AttemptService
}

func NewHandler(s AttemptService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	attempts, err := h.service.ListAttempts(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list attempts")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, attempts)
}

func (h *Handler) GetAttempt(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		config.Error(w, http.StatusBadRequest, "attempt id required")
		return
	}

	attempt, err := h.service.GetAttempt(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			config.Error(w, http.StatusNotFound, "attempt not found")
			return
		}
		log.WithError(err).Error("Failed to fetch attempt")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, attempt)
}
