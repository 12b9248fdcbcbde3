package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/auth"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/evaluator"
)

type Handler struct {
	service  Service
	tokenTTL time.Duration
}

func NewHandler(s Service, tokenTTL time.Duration) *Handler {
	return &Handler{service: s, tokenTTL: tokenTTL}
}

type startResponse struct {
	Token string `json:"token"`
	View  View   `json:"view"`
}

type answerRequest struct {
	Index  *int   `json:"index"`
	Answer string `json:"answer"`
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sess, err := h.service.Start(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to start session")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := auth.GenerateJWT(sess.ID().String(), h.tokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to issue session token")
		_ = h.service.End(r.Context(), sess.ID().String())
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	auth.SetSessionCookie(w, r, token, h.tokenTTL)
	config.JSON(w, http.StatusCreated, startResponse{Token: token, View: sess.View()})
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Current(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid answer body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Index == nil {
		config.Error(w, http.StatusBadRequest, "index required")
		return
	}

	result, err := h.service.Submit(r.Context(), id, *req.Index, req.Answer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Restart(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.End(r.Context(), id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		h.writeError(w, r, err)
		return
	}

	auth.ClearSessionCookie(w, r)
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "session ended",
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Summary())
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, err := auth.GetSessionClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("Session claims missing from request")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return claims.SessionID, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())

	switch {
	case errors.Is(err, ErrSessionNotFound):
		config.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyAnswer):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrFinished),
		errors.Is(err, ErrIndexMismatch),
		errors.Is(err, ErrSubmissionInProgress):
		config.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotReady):
		config.Error(w, http.StatusTooEarly, err.Error())
	case errors.Is(err, evaluator.ErrComparison):
		log.WithError(err).Error("Answer could not be evaluated")
		config.Error(w, http.StatusBadGateway, "answer could not be evaluated, please try again")
	default:
		log.WithError(err).Error("Unexpected session error")
		config.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
