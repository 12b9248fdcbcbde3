package quiz

import "gorm.io/gorm"

const memoryHistorySize = 100

type QuizContainer struct {
	Handler *Handler
	Service AttemptService
	Store   *FileStore
}

// NewQuizContainer falls back to an in-memory attempt history when db is nil.
func NewQuizContainer(db *gorm.DB, quizPath string) *QuizContainer {
	var repo AttemptRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository(memoryHistorySize)
	}
	service := NewService(repo)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Store:   NewFileStore(quizPath),
	}
}
