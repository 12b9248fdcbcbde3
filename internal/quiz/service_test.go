package quiz_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

func TestRecordAttempt(t *testing.T) {
	svc := quiz.NewService(quiz.NewMemoryRepository(10))
	ctx := context.Background()
	sessionID := uuid.New()

	answers := []quiz.AnswerRecord{
		{Index: 0, Kind: quiz.KindClassic, Answer: "donald", Points: 20, Ceiling: 34, Passed: true},
		{Index: 1, Kind: quiz.KindMultipleChoice, Answer: "rome", Points: 0, Ceiling: 33},
	}

	attempt, err := svc.RecordAttempt(ctx, sessionID, 20, 3, answers)
	if err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if attempt.PassedCount != 1 {
		t.Errorf("expected 1 passed answer, got %d", attempt.PassedCount)
	}
	if attempt.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}

	var decoded []quiz.AnswerRecord
	if err := json.Unmarshal(attempt.Answers, &decoded); err != nil {
		t.Fatalf("answers are not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Answer != "rome" {
		t.Errorf("unexpected answers: %+v", decoded)
	}

	got, err := svc.GetAttempt(ctx, attempt.ID.String())
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	if got.SessionID != sessionID {
		t.Errorf("expected session %s, got %s", sessionID, got.SessionID)
	}
}

func TestGetAttemptNotFound(t *testing.T) {
	svc := quiz.NewService(quiz.NewMemoryRepository(10))

	if _, err := svc.GetAttempt(context.Background(), "not-a-uuid"); !errors.Is(err, quiz.ErrAttemptNotFound) {
		t.Errorf("expected ErrAttemptNotFound for invalid id, got %v", err)
	}
	if _, err := svc.GetAttempt(context.Background(), uuid.NewString()); !errors.Is(err, quiz.ErrAttemptNotFound) {
		t.Errorf("expected ErrAttemptNotFound for unknown id, got %v", err)
	}
}

func TestListAttemptsMemoryLimit(t *testing.T) {
	svc := quiz.NewService(quiz.NewMemoryRepository(3))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.RecordAttempt(ctx, uuid.New(), i, 5, nil); err != nil {
			t.Fatalf("RecordAttempt %d failed: %v", i, err)
		}
	}

	attempts, err := svc.ListAttempts(ctx, 0)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("memory history should keep the last 3 attempts, got %d", len(attempts))
	}
	for _, a := range attempts {
		if a.Score < 2 {
			t.Errorf("old attempt with score %d should have been evicted", a.Score)
		}
	}
}
