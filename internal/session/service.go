package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/evaluator"
)

var ErrSessionNotFound = errors.New("session not found")

type SubmitResult struct {
	Outcome *evaluator.Outcome `json:"outcome"`
	View    View               `json:"view"`
}

type Service interface {
	Start(ctx context.Context) (*Session, error)
	Current(ctx context.Context, id string) (View, error)
	Submit(ctx context.Context, id string, index int, answer string) (*SubmitResult, error)
	Restart(ctx context.Context, id string) (View, error)
	End(ctx context.Context, id string) error
	Summary() Summary
}

// service keeps one Session per user. Sessions never share mutable state.
type service struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	deck      *Deck
	evaluator evaluator.Evaluator
	opts      []Option
	maxIdle   time.Duration
	now       func() time.Time
}

func NewService(deck *Deck, eval evaluator.Evaluator, maxIdle time.Duration, opts ...Option) Service {
	return &service{
		sessions:  make(map[uuid.UUID]*Session),
		deck:      deck,
		evaluator: eval,
		opts:      opts,
		maxIdle:   maxIdle,
		now:       time.Now,
	}
}

func (s *service) Start(ctx context.Context) (*Session, error) {
	log := config.WithContext(ctx)

	s.prune(ctx)

	sess := New(uuid.New(), s.deck, s.evaluator, s.opts...)

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	log.WithField("session_id", sess.ID()).Info("Session started")
	return sess, nil
}

func (s *service) get(ctx context.Context, id string) (*Session, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Invalid session ID")
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *service) Current(ctx context.Context, id string) (View, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return sess.View(), nil
}

func (s *service) Submit(ctx context.Context, id string, index int, answer string) (*SubmitResult, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, err := sess.Submit(ctx, index, answer)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Outcome: outcome, View: sess.View()}, nil
}

func (s *service) Restart(ctx context.Context, id string) (View, error) {
	log := config.WithContext(ctx)

	sess, err := s.get(ctx, id)
	if err != nil {
		return View{}, err
	}

	sess.Restart()
	log.WithField("session_id", id).Info("Session restarted")
	return sess.View(), nil
}

func (s *service) End(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	sid, err := uuid.Parse(id)
	if err != nil {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	_, ok := s.sessions[sid]
	delete(s.sessions, sid)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	log.WithField("session_id", id).Info("Session ended")
	return nil
}

func (s *service) Summary() Summary {
	return s.deck.Summary()
}

func (s *service) prune(ctx context.Context) {
	if s.maxIdle <= 0 {
		return
	}
	cutoff := s.now().Add(-s.maxIdle)

	s.mu.Lock()
	var removed int
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		config.WithContext(ctx).WithField("removed", removed).Info("Pruned idle sessions")
	}
}
