package evaluator

import (
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

type Request struct {
	Kind          quiz.Kind
	Question      string
	CorrectAnswer string
	UserAnswer    string
	Ceiling       int
}

type Outcome struct {
	Points   int           `json:"points"`
	Feedback string        `json:"feedback"`
	Passed   bool          `json:"passed"`
	Pause    time.Duration `json:"-"`
}

type ComparisonRequest struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
	ScoreLimit    int
}

// ComparisonResult is the model's verdict. Score is not clamped to ScoreLimit.
type ComparisonResult struct {
	Description string `json:"description"`
	Score       int    `json:"score"`
}

type Pacing struct {
	Open   time.Duration
	Choice time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{Open: 4 * time.Second, Choice: 3 * time.Second}
}
