package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/evaluator"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"github.com/sirupsen/logrus"
)

var (
	ErrFinished             = errors.New("quiz already finished")
	ErrEmptyAnswer          = errors.New("answer must not be empty")
	ErrIndexMismatch        = errors.New("answer does not match the current question")
	ErrNotReady             = errors.New("next question is not available yet")
	ErrSubmissionInProgress = errors.New("an answer is already being evaluated")
)

type State string

const (
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// Result is handed to the finish hook once the last question is answered.
type Result struct {
	SessionID uuid.UUID
	Score     int
	Total     int
	Answers   []quiz.AnswerRecord
}

type FinishFunc func(ctx context.Context, r Result)

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithFinishHook(fn FinishFunc) Option {
	return func(s *Session) { s.onFinish = fn }
}

// Session walks one user through the deck: InProgress(index, score) until the
// last answer, then Finished(score).
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	deck      *Deck
	evaluator evaluator.Evaluator
	now       func() time.Time
	onFinish  FinishFunc

	index      int
	score      int
	readyAt    time.Time
	answers    []quiz.AnswerRecord
	submitting bool
	epoch      int
	lastActive time.Time
}

func New(id uuid.UUID, deck *Deck, eval evaluator.Evaluator, opts ...Option) *Session {
	s := &Session{
		id:        id,
		deck:      deck,
		evaluator: eval,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastActive = s.now()
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	if s.index >= s.deck.Len() {
		return StateFinished
	}
	return StateInProgress
}

func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Submit evaluates answer for the question at index. The state only changes
// once evaluation has completed; a failed evaluation leaves it untouched.
func (s *Session) Submit(ctx context.Context, index int, answer string) (*evaluator.Outcome, error) {
	log := config.WithContext(ctx).WithField("session_id", s.id)

	s.mu.Lock()
	if s.stateLocked() == StateFinished {
		s.mu.Unlock()
		return nil, ErrFinished
	}
	if strings.TrimSpace(answer) == "" {
		s.mu.Unlock()
		return nil, ErrEmptyAnswer
	}
	if index != s.index {
		current := s.index
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: got %d, current is %d", ErrIndexMismatch, index, current)
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	if now := s.now(); now.Before(s.readyAt) {
		s.mu.Unlock()
		return nil, ErrNotReady
	}

	item := s.deck.Items[index]
	ceiling := s.deck.Points[index]
	s.submitting = true
	epoch := s.epoch
	s.mu.Unlock()

	outcome, err := s.evaluator.Evaluate(ctx, evaluator.Request{
		Kind:          item.Kind,
		Question:      item.Text,
		CorrectAnswer: item.CorrectAnswer,
		UserAnswer:    answer,
		Ceiling:       ceiling,
	})

	s.mu.Lock()
	s.submitting = false
	s.lastActive = s.now()
	if err != nil {
		s.mu.Unlock()
		log.WithError(err).WithField("index", index).Warn("Answer evaluation failed, question stays open")
		return nil, err
	}
	if epoch != s.epoch {
		s.mu.Unlock()
		log.WithField("index", index).Info("Session restarted while evaluating, answer discarded")
		return nil, fmt.Errorf("%w: session was restarted", ErrIndexMismatch)
	}
	if index != s.index {
		current := s.index
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: got %d, current is %d", ErrIndexMismatch, index, current)
	}

	s.score += outcome.Points
	s.index++
	s.readyAt = s.now().Add(outcome.Pause)
	s.answers = append(s.answers, quiz.AnswerRecord{
		Index:    index,
		Kind:     item.Kind,
		Answer:   answer,
		Points:   outcome.Points,
		Ceiling:  ceiling,
		Passed:   outcome.Passed,
		Feedback: outcome.Feedback,
	})

	finished := s.stateLocked() == StateFinished
	var result Result
	if finished {
		answers := make([]quiz.AnswerRecord, len(s.answers))
		copy(answers, s.answers)
		result = Result{SessionID: s.id, Score: s.score, Total: s.deck.Len(), Answers: answers}
	}
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"index":  index,
		"points": outcome.Points,
		"passed": outcome.Passed,
	}).Info("Answer submitted")

	if finished {
		log.WithField("score", result.Score).Info("Quiz finished")
		if s.onFinish != nil {
			s.onFinish(ctx, result)
		}
	}
	return outcome, nil
}

// Restart returns the session to its initial state. Calling it again is a no-op.
// An evaluation still in flight keeps the submission slot until it returns, and
// its result is then discarded.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = 0
	s.score = 0
	s.readyAt = time.Time{}
	s.answers = nil
	s.epoch++
	s.lastActive = s.now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
