package aiquiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"github.com/sirupsen/logrus"
)

const MaxAttempts = 5

var (
	ErrNoSources     = errors.New("no source documents to generate from")
	ErrInvalidCount  = errors.New("question count must be positive")
	ErrCountMismatch = errors.New("generated quiz does not match the requested count")
	ErrProvider      = errors.New("quiz generation service failed")
)

// Pipeline turns source documents into a validated quiz. Nothing is saved
// unless a generated quiz passed validation.
type Pipeline interface {
	Generate(ctx context.Context, sources []SourceDocument, count int) (*quiz.Quiz, error)
	GenerateAndSave(ctx context.Context, dir string, count int) (*GenerateResponse, error)
}

type pipeline struct {
	provider Provider
	store    quiz.Store
}

func NewPipeline(provider Provider, store quiz.Store) Pipeline {
	return &pipeline{provider: provider, store: store}
}

func (p *pipeline) Generate(ctx context.Context, sources []SourceDocument, count int) (*quiz.Quiz, error) {
	log := config.WithContext(ctx).WithField("count", count)

	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	req := GenerationRequest{System: systemPrompt, Sources: sources, Count: count}

	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attemptLog := log.WithField("attempt", attempt)

		q, err := p.provider.Generate(ctx, req)
		if err != nil {
			attemptLog.WithError(err).Warn("Generation attempt failed")
			lastErr = fmt.Errorf("%w: %w", ErrProvider, err)
			continue
		}

		if err := check(q, count); err != nil {
			attemptLog.WithError(err).Warn("Generated quiz rejected")
			lastErr = err
			req.Corrections = append(req.Corrections, err.Error())
			continue
		}

		attemptLog.Info("Quiz generated")
		return q, nil
	}

	log.WithError(lastErr).Error("Quiz generation gave up")
	return nil, fmt.Errorf("after %d attempts: %w", MaxAttempts, lastErr)
}

func check(q *quiz.Quiz, count int) error {
	if got := q.Count(); got != count {
		return fmt.Errorf("%w: expected %d questions, got %d (%d classic, %d multiple-choice, %d fill-in-the-blank)",
			ErrCountMismatch, count, got,
			len(q.ClassicQuestions), len(q.MultipleChoiceQuestions), len(q.FillInTheBlank))
	}
	return q.Validate()
}

func (p *pipeline) GenerateAndSave(ctx context.Context, dir string, count int) (*GenerateResponse, error) {
	log := config.WithContext(ctx)

	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	sources, err := LoadSources(dir)
	if err != nil {
		log.WithError(err).Error("Failed to load source documents")
		return nil, err
	}

	q, err := p.Generate(ctx, sources, count)
	if err != nil {
		return nil, err
	}

	path, err := p.store.Save(q)
	if err != nil {
		log.WithError(err).Error("Failed to save generated quiz")
		return nil, err
	}

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}

	log.WithFields(logrus.Fields{
		"path":    path,
		"count":   q.Count(),
		"sources": len(sources),
	}).Info("Quiz saved")

	return &GenerateResponse{
		Path:  path,
		Count: q.Count(),
		ByKind: map[string]int{
			string(quiz.KindClassic):        len(q.ClassicQuestions),
			string(quiz.KindMultipleChoice): len(q.MultipleChoiceQuestions),
			string(quiz.KindFillInBlank):    len(q.FillInTheBlank),
		},
		Sources: names,
	}, nil
}
