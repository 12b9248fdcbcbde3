package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownKind = errors.New("unknown question kind")
	ErrComparison  = errors.New("answer comparison failed")
)

type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (*Outcome, error)
}

type service struct {
	comparer Comparer
	pacing   Pacing
}

func NewService(comparer Comparer, pacing Pacing) Evaluator {
	return &service{comparer: comparer, pacing: pacing}
}

func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PassMark is the lowest score that counts as a pass: strictly more than half.
func PassMark(ceiling int) int {
	return ceiling/2 + 1
}

func (s *service) Evaluate(ctx context.Context, req Request) (*Outcome, error) {
	switch req.Kind {
	case quiz.KindMultipleChoice:
		return s.evaluateChoice(req), nil
	case quiz.KindClassic, quiz.KindFillInBlank:
		return s.evaluateOpen(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
}

func (s *service) evaluateChoice(req Request) *Outcome {
	correct := Normalize(req.CorrectAnswer)
	user := Normalize(req.UserAnswer)

	out := &Outcome{Pause: s.pacing.Choice}
	if user == correct {
		out.Passed = true
		out.Points = req.Ceiling
		out.Feedback = "Correct!"
	} else {
		out.Feedback = fmt.Sprintf("Incorrect! Correct answer: %s", correct)
	}
	return out
}

func (s *service) evaluateOpen(ctx context.Context, req Request) (*Outcome, error) {
	log := config.WithContext(ctx)

	result, err := s.comparer.Compare(ctx, ComparisonRequest{
		Question:      req.Question,
		CorrectAnswer: Normalize(req.CorrectAnswer),
		UserAnswer:    Normalize(req.UserAnswer),
		ScoreLimit:    req.Ceiling,
	})
	if err != nil {
		log.WithError(err).Warn("Semantic comparison failed")
		return nil, fmt.Errorf("%w: %w", ErrComparison, err)
	}

	out := &Outcome{
		Points: result.Score,
		Passed: result.Score >= PassMark(req.Ceiling),
		Pause:  s.pacing.Open,
	}
	if out.Passed {
		out.Feedback = fmt.Sprintf("Correct! %s (Score: %d)", result.Description, result.Score)
	} else {
		out.Feedback = fmt.Sprintf("Incorrect! %s (Score: %d)", result.Description, result.Score)
	}

	log.WithFields(logrus.Fields{
		"kind":    req.Kind,
		"score":   result.Score,
		"ceiling": req.Ceiling,
		"passed":  out.Passed,
	}).Debug("Open answer evaluated")
	return out, nil
}
