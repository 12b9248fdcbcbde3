package session

import (
	"context"
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/evaluator"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

type SessionContainer struct {
	Handler *Handler
	Service Service
}

func NewSessionContainer(deck *Deck, eval evaluator.Evaluator, attempts quiz.AttemptService, tokenTTL time.Duration) *SessionContainer {
	service := NewService(deck, eval, tokenTTL, WithFinishHook(RecordAttempts(attempts)))
	handler := NewHandler(service, tokenTTL)

	return &SessionContainer{
		Handler: handler,
		Service: service,
	}
}

// RecordAttempts stores every finished session in the attempt history.
func RecordAttempts(attempts quiz.AttemptService) FinishFunc {
	return func(ctx context.Context, r Result) {
		if _, err := attempts.RecordAttempt(ctx, r.SessionID, r.Score, r.Total, r.Answers); err != nil {
			config.WithContext(ctx).WithError(err).Warn("Finished session could not be recorded")
		}
	}
}
