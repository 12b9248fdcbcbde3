package quiz_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ClassicQuestions: []quiz.ClassicQuestion{
			{QuestionText: "Who founded the city?", CorrectAnswer: "Donald Vergil"},
		},
		MultipleChoiceQuestions: []quiz.MultipleChoiceQuestion{
			{
				QuestionText:  "What is the capital of France?",
				Choices:       []string{"Berlin", "Madrid", "Paris", "Rome", "Lisbon"},
				CorrectAnswer: "Paris",
			},
		},
		FillInTheBlank: []quiz.FillInBlankQuestion{
			{QuestionText: "The treaty was signed in ____.", CorrectAnswer: "1256"},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quiz_data.json")
	store := quiz.NewFileStore(path)

	original := sampleQuiz()
	location, err := store.Save(original)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if location != path {
		t.Errorf("expected location %s, got %s", path, location)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(original, loaded) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", original, loaded)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the quiz document in the directory, found %d entries", len(entries))
	}
}

func TestFileStoreSaveRejectsInvalidQuiz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz_data.json")
	store := quiz.NewFileStore(path)

	q := sampleQuiz()
	q.MultipleChoiceQuestions[0].Choices = q.MultipleChoiceQuestions[0].Choices[:4]

	if _, err := store.Save(q); !errors.Is(err, quiz.ErrMalformedQuiz) {
		t.Fatalf("expected ErrMalformedQuiz, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("no document should have been written, stat returned %v", err)
	}
}

func TestDecode(t *testing.T) {
	t.Run("FieldNames", func(t *testing.T) {
		raw := []byte(`{
			"classic_questions": [{"question_text": "Q1", "correct_answer": "A1"}],
			"multiple_choice_questions": [{"question_text": "Q2", "choices": ["a","b","c","d","e"], "correct_answer": "c"}],
			"fill_in_the_blank": []
		}`)
		q, err := quiz.Decode(raw)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if q.Count() != 2 {
			t.Errorf("expected 2 questions, got %d", q.Count())
		}
		if q.MultipleChoiceQuestions[0].Choices[2] != "c" {
			t.Errorf("choices order not preserved: %v", q.MultipleChoiceQuestions[0].Choices)
		}
	})

	t.Run("MissingCollection", func(t *testing.T) {
		raw := []byte(`{"classic_questions": [], "multiple_choice_questions": []}`)
		if _, err := quiz.Decode(raw); !errors.Is(err, quiz.ErrMalformedQuiz) {
			t.Errorf("expected ErrMalformedQuiz, got %v", err)
		}
	})

	t.Run("NullCollection", func(t *testing.T) {
		raw := []byte(`{"classic_questions": null, "multiple_choice_questions": [], "fill_in_the_blank": []}`)
		if _, err := quiz.Decode(raw); !errors.Is(err, quiz.ErrMalformedQuiz) {
			t.Errorf("expected ErrMalformedQuiz, got %v", err)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		if _, err := quiz.Decode([]byte(`{not json`)); !errors.Is(err, quiz.ErrMalformedQuiz) {
			t.Errorf("expected ErrMalformedQuiz, got %v", err)
		}
	})

	t.Run("EmptyAnswer", func(t *testing.T) {
		raw := []byte(`{"classic_questions": [{"question_text": "Q", "correct_answer": "  "}], "multiple_choice_questions": [], "fill_in_the_blank": []}`)
		if _, err := quiz.Decode(raw); !errors.Is(err, quiz.ErrMalformedQuiz) {
			t.Errorf("expected ErrMalformedQuiz, got %v", err)
		}
	})
}

func TestItemsOrder(t *testing.T) {
	q := sampleQuiz()
	q.ClassicQuestions = append(q.ClassicQuestions, quiz.ClassicQuestion{QuestionText: "Second classic", CorrectAnswer: "x"})

	items := q.Items()
	want := []quiz.Kind{quiz.KindClassic, quiz.KindClassic, quiz.KindMultipleChoice, quiz.KindFillInBlank}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, k := range want {
		if items[i].Kind != k {
			t.Errorf("item %d: expected kind %s, got %s", i, k, items[i].Kind)
		}
	}
	if items[1].Text != "Second classic" {
		t.Errorf("classic order not preserved: %q", items[1].Text)
	}

	items[2].Choices[0] = "mutated"
	if q.MultipleChoiceQuestions[0].Choices[0] == "mutated" {
		t.Error("Items must not share choice slices with the quiz")
	}
}
