package aiquiz

import "github.com/saulo-duarte/chronos-quiz/internal/quiz"

type AIQuizContainer struct {
	Handler  *Handler
	Pipeline Pipeline
}

func NewAIQuizContainer(provider Provider, store quiz.Store, sourceDir string) *AIQuizContainer {
	pipeline := NewPipeline(provider, store)
	handler := NewHandler(pipeline, sourceDir)

	return &AIQuizContainer{
		Handler:  handler,
		Pipeline: pipeline,
	}
}
