package aiquiz_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saulo-duarte/chronos-quiz/internal/aiquiz"
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

type fakeProvider struct {
	responses []*quiz.Quiz
	errs      []error
	requests  []aiquiz.GenerationRequest
}

func (f *fakeProvider) Generate(_ context.Context, req aiquiz.GenerationRequest) (*quiz.Quiz, error) {
	i := len(f.requests)
	corrections := append([]string(nil), req.Corrections...)
	req.Corrections = corrections
	f.requests = append(f.requests, req)

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return f.responses[len(f.responses)-1], nil
}

func makeQuiz(classic, mcq, fitb int) *quiz.Quiz {
	q := &quiz.Quiz{
		ClassicQuestions:        []quiz.ClassicQuestion{},
		MultipleChoiceQuestions: []quiz.MultipleChoiceQuestion{},
		FillInTheBlank:          []quiz.FillInBlankQuestion{},
	}
	for i := 0; i < classic; i++ {
		q.ClassicQuestions = append(q.ClassicQuestions, quiz.ClassicQuestion{QuestionText: "Explain photosynthesis.", CorrectAnswer: "Plants turn light into energy"})
	}
	for i := 0; i < mcq; i++ {
		q.MultipleChoiceQuestions = append(q.MultipleChoiceQuestions, quiz.MultipleChoiceQuestion{
			QuestionText:  "Which gas do plants absorb?",
			Choices:       []string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium", "Argon"},
			CorrectAnswer: "Carbon dioxide",
		})
	}
	for i := 0; i < fitb; i++ {
		q.FillInTheBlank = append(q.FillInTheBlank, quiz.FillInBlankQuestion{QuestionText: "Plants need ____ to grow.", CorrectAnswer: "light"})
	}
	return q
}

var sources = []aiquiz.SourceDocument{{Name: "notes.txt", MIMEType: "text/plain", Data: []byte("Photosynthesis ...")}}

func TestGenerateInputErrors(t *testing.T) {
	provider := &fakeProvider{responses: []*quiz.Quiz{makeQuiz(1, 1, 1)}}
	p := aiquiz.NewPipeline(provider, quiz.NewFileStore(filepath.Join(t.TempDir(), "quiz.json")))

	if _, err := p.Generate(context.Background(), nil, 3); !errors.Is(err, aiquiz.ErrNoSources) {
		t.Errorf("expected ErrNoSources, got %v", err)
	}
	for _, count := range []int{0, -4} {
		if _, err := p.Generate(context.Background(), sources, count); !errors.Is(err, aiquiz.ErrInvalidCount) {
			t.Errorf("count %d: expected ErrInvalidCount, got %v", count, err)
		}
	}
	if len(provider.requests) != 0 {
		t.Errorf("provider called %d times on invalid input", len(provider.requests))
	}
}

func TestGenerateRetries(t *testing.T) {
	t.Run("SucceedsAfterMismatch", func(t *testing.T) {
		provider := &fakeProvider{responses: []*quiz.Quiz{makeQuiz(4, 4, 4), makeQuiz(4, 4, 5)}}
		p := aiquiz.NewPipeline(provider, nil)

		q, err := p.Generate(context.Background(), sources, 13)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if q.Count() != 13 {
			t.Errorf("expected 13 questions, got %d", q.Count())
		}
		if len(provider.requests) != 2 {
			t.Fatalf("expected 2 provider calls, got %d", len(provider.requests))
		}
		if len(provider.requests[0].Corrections) != 0 {
			t.Errorf("first request should carry no corrections")
		}
		second := provider.requests[1]
		if len(second.Corrections) != 1 || !strings.Contains(second.Corrections[0], "expected 13 questions, got 12") {
			t.Errorf("unexpected corrections on retry: %v", second.Corrections)
		}
		if second.Count != 13 || second.System == "" || len(second.Sources) != 1 {
			t.Errorf("retry lost request fields: %+v", second)
		}
	})

	t.Run("GivesUpOnPersistentMismatch", func(t *testing.T) {
		provider := &fakeProvider{responses: []*quiz.Quiz{makeQuiz(1, 1, 1)}}
		p := aiquiz.NewPipeline(provider, nil)

		_, err := p.Generate(context.Background(), sources, 5)
		if !errors.Is(err, aiquiz.ErrCountMismatch) {
			t.Fatalf("expected ErrCountMismatch, got %v", err)
		}
		if len(provider.requests) != aiquiz.MaxAttempts {
			t.Errorf("expected %d attempts, got %d", aiquiz.MaxAttempts, len(provider.requests))
		}
	})

	t.Run("RejectsWrongChoiceCount", func(t *testing.T) {
		bad := makeQuiz(1, 1, 1)
		bad.MultipleChoiceQuestions[0].Choices = []string{"a", "b", "c", "d"}
		provider := &fakeProvider{responses: []*quiz.Quiz{bad, makeQuiz(1, 1, 1)}}
		p := aiquiz.NewPipeline(provider, nil)

		if _, err := p.Generate(context.Background(), sources, 3); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(provider.requests) != 2 {
			t.Errorf("expected 2 provider calls, got %d", len(provider.requests))
		}
	})

	t.Run("ProviderErrors", func(t *testing.T) {
		failure := errors.New("quota exceeded")
		provider := &fakeProvider{
			responses: []*quiz.Quiz{makeQuiz(1, 1, 1)},
			errs:      []error{failure, failure, failure, failure, failure},
		}
		p := aiquiz.NewPipeline(provider, nil)

		_, err := p.Generate(context.Background(), sources, 3)
		if !errors.Is(err, aiquiz.ErrProvider) || !errors.Is(err, failure) {
			t.Fatalf("expected wrapped provider error, got %v", err)
		}
		if len(provider.requests) != aiquiz.MaxAttempts {
			t.Errorf("expected %d attempts, got %d", aiquiz.MaxAttempts, len(provider.requests))
		}
	})
}

func TestGenerateAndSave(t *testing.T) {
	writeSources := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Plants\nPlants absorb carbon dioxide."), 0o644); err != nil {
			t.Fatal(err)
		}
		return dir
	}

	t.Run("Saves", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "quiz_data.json")
		store := quiz.NewFileStore(out)
		p := aiquiz.NewPipeline(&fakeProvider{responses: []*quiz.Quiz{makeQuiz(1, 1, 2)}}, store)

		resp, err := p.GenerateAndSave(context.Background(), writeSources(t), 4)
		if err != nil {
			t.Fatalf("GenerateAndSave failed: %v", err)
		}
		if resp.Path != out || resp.Count != 4 || resp.ByKind["fitb"] != 2 {
			t.Errorf("unexpected response: %+v", resp)
		}
		if len(resp.Sources) != 1 || resp.Sources[0] != "notes.md" {
			t.Errorf("unexpected sources: %v", resp.Sources)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.Count() != 4 {
			t.Errorf("expected 4 saved questions, got %d", loaded.Count())
		}
	})

	t.Run("NothingWrittenOnMismatch", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "quiz_data.json")
		p := aiquiz.NewPipeline(&fakeProvider{responses: []*quiz.Quiz{makeQuiz(2, 2, 2)}}, quiz.NewFileStore(out))

		if _, err := p.GenerateAndSave(context.Background(), writeSources(t), 4); !errors.Is(err, aiquiz.ErrCountMismatch) {
			t.Fatalf("expected ErrCountMismatch, got %v", err)
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Errorf("quiz file was written despite failure")
		}
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		provider := &fakeProvider{responses: []*quiz.Quiz{makeQuiz(1, 1, 1)}}
		p := aiquiz.NewPipeline(provider, quiz.NewFileStore(filepath.Join(t.TempDir(), "q.json")))

		if _, err := p.GenerateAndSave(context.Background(), t.TempDir(), 3); !errors.Is(err, aiquiz.ErrNoSources) {
			t.Errorf("expected ErrNoSources, got %v", err)
		}
		if len(provider.requests) != 0 {
			t.Errorf("provider called without sources")
		}
	})
}
