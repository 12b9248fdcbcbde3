package container

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/saulo-duarte/chronos-quiz/internal/aiquiz"
	"github.com/saulo-duarte/chronos-quiz/internal/auth"
	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/saulo-duarte/chronos-quiz/internal/evaluator"
	"github.com/saulo-duarte/chronos-quiz/internal/gemini"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"github.com/saulo-duarte/chronos-quiz/internal/session"
	"google.golang.org/genai"
)

var ErrNoAPIKey = errors.New("GEMINI_API_KEY is not set")

type Container struct {
	Settings config.Settings

	Deck      *session.Deck
	Evaluator evaluator.Evaluator

	QuizContainer    *quiz.QuizContainer
	SessionContainer *session.SessionContainer
	AIQuizContainer  *aiquiz.AIQuizContainer
}

// New loads settings from the environment and exits when the container
// cannot be built.
func New() *Container {
	s := config.Load()
	config.Init()

	c, err := Build(context.Background(), s)
	if err != nil {
		config.Logger().WithError(err).Fatal("Failed to build container")
	}
	return c
}

// Build wires every component for s. A malformed or missing quiz document is
// an error.
func Build(ctx context.Context, s config.Settings) (*Container, error) {
	log := config.WithContext(ctx)

	if err := initSessionSecret(s.SessionSecret); err != nil {
		return nil, err
	}

	db := config.DB
	if s.DatabaseDSN != "" {
		if err := config.Connect(ctx, s.DatabaseDSN); err != nil {
			return nil, err
		}
		if err := quiz.Migrate(config.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate attempts table: %w", err)
		}
		db = config.DB
	} else {
		log.Warn("DATABASE_DSN not set, attempt history is kept in memory")
	}

	quizContainer := quiz.NewQuizContainer(db, s.QuizPath)

	q, err := quizContainer.Store.Load()
	if err != nil {
		return nil, err
	}
	deck, err := session.NewDeck(q)
	if err != nil {
		return nil, err
	}
	log.WithField("questions", deck.Len()).Info("Quiz loaded")

	client, clientErr := newClient(ctx, s)

	var comparer evaluator.Comparer
	var provider aiquiz.Provider
	if clientErr != nil {
		log.WithError(clientErr).Warn("Gemini client unavailable, open questions cannot be graded")
		comparer = evaluator.NewUnavailableComparer(clientErr)
		provider = aiquiz.NewUnavailableProvider(clientErr)
	} else {
		comparer = evaluator.NewGeminiComparer(client, s.CompareModel, s.AITimeout)
		provider = aiquiz.NewGeminiProvider(client, s.GenerateModel, s.AITimeout)
	}

	eval := evaluator.NewService(comparer, evaluator.Pacing{Open: s.PaceOpen, Choice: s.PaceChoice})
	sessionContainer := session.NewSessionContainer(deck, eval, quizContainer.Service, s.SessionTTL)
	aiQuizContainer := aiquiz.NewAIQuizContainer(provider, quizContainer.Store, s.SourceDir)

	return &Container{
		Settings:         s,
		Deck:             deck,
		Evaluator:        eval,
		QuizContainer:    quizContainer,
		SessionContainer: sessionContainer,
		AIQuizContainer:  aiQuizContainer,
	}, nil
}

// NewGenerator wires only the generation pipeline. It needs neither a quiz
// document nor a database.
func NewGenerator(ctx context.Context, s config.Settings) (aiquiz.Pipeline, error) {
	client, err := newClient(ctx, s)
	if err != nil {
		return nil, err
	}
	provider := aiquiz.NewGeminiProvider(client, s.GenerateModel, s.AITimeout)
	return aiquiz.NewPipeline(provider, quiz.NewFileStore(s.QuizPath)), nil
}

func newClient(ctx context.Context, s config.Settings) (*genai.Client, error) {
	if s.GeminiAPIKey == "" {
		return nil, ErrNoAPIKey
	}
	return gemini.NewClient(ctx, s.GeminiAPIKey)
}

func initSessionSecret(secret string) error {
	if secret != "" {
		auth.InitWithSecret(secret)
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}
	config.Logger().Warn("SESSION_SECRET not set, using a random secret; tokens will not survive a restart")
	auth.InitWithSecret(hex.EncodeToString(buf))
	return nil
}
