package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const defaultListLimit = 20

type AttemptService interface {
	RecordAttempt(ctx context.Context, sessionID uuid.UUID, score, total int, answers []AnswerRecord) (*Attempt, error)
	GetAttempt(ctx context.Context, id string) (*Attempt, error)
	ListAttempts(ctx context.Context, limit int) ([]*Attempt, error)
}

type attemptService struct {
	repo AttemptRepository
	now  func() time.Time
}

func NewService(repo AttemptRepository) AttemptService {
	return &attemptService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *attemptService) RecordAttempt(ctx context.Context, sessionID uuid.UUID, score, total int, answers []AnswerRecord) (*Attempt, error) {
	log := config.WithContext(ctx)

	if answers == nil {
		answers = []AnswerRecord{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	passed := 0
	for _, a := range answers {
		if a.Passed {
			passed++
		}
	}

	now := s.now()
	attempt := &Attempt{
		ID:             uuid.New(),
		SessionID:      sessionID,
		Score:          score,
		TotalQuestions: total,
		PassedCount:    passed,
		Answers:        datatypes.JSON(raw),
		CreatedAt:      now,
		CompletedAt:    &now,
	}

	if err := s.repo.Create(attempt); err != nil {
		log.WithError(err).Error("Failed to record attempt")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"attempt_id": attempt.ID,
		"score":      score,
		"passed":     passed,
		"total":      total,
	}).Info("Attempt recorded")
	return attempt, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, id string) (*Attempt, error) {
	log := config.WithContext(ctx)

	attemptID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid attempt ID")
		return nil, ErrAttemptNotFound
	}

	attempt, err := s.repo.GetByID(attemptID)
	if err != nil {
		if !errors.Is(err, ErrAttemptNotFound) {
			log.WithError(err).Error("Failed to fetch attempt")
		}
		return nil, err
	}
	return attempt, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, limit int) ([]*Attempt, error) {
	log := config.WithContext(ctx)

	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}

	attempts, err := s.repo.List(limit)
	if err != nil {
		log.WithError(err).Error("Failed to list attempts")
		return nil, err
	}
	if attempts == nil {
		attempts = []*Attempt{}
	}
	return attempts, nil
}
