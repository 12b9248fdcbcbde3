package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attempt is a finished run through the quiz.
type Attempt struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	Score          int            `gorm:"not null;default:0" json:"score"`
	TotalQuestions int            `gorm:"not null;default:0" json:"total_questions"`
	PassedCount    int            `gorm:"not null;default:0" json:"passed_count"`
	Answers        datatypes.JSON `gorm:"type:jsonb;not null" json:"answers"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

type AnswerRecord struct {
	Index    int    `json:"index"`
	Kind     Kind   `json:"kind"`
	Answer   string `json:"answer"`
	Points   int    `json:"points"`
	Ceiling  int    `json:"ceiling"`
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback"`
}
