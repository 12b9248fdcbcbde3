package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

var requiredCollections = []string{"classic_questions", "multiple_choice_questions", "fill_in_the_blank"}

type Store interface {
	Load() (*Quiz, error)
	Save(q *Quiz) (string, error)
}

// FileStore keeps the quiz as a single JSON document on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (*Quiz, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz document %s: %w", s.path, err)
	}
	return Decode(raw)
}

// Save writes through a temp file in the target directory so a failed write
// never leaves a truncated document behind.
func (s *FileStore) Save(q *Quiz) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}

	data, err := Encode(q)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create quiz directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".quiz-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write quiz document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close quiz document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return "", fmt.Errorf("failed to move quiz document into place: %w", err)
	}

	return s.path, nil
}

func Encode(q *Quiz) ([]byte, error) {
	out := *q
	if out.ClassicQuestions == nil {
		out.ClassicQuestions = []ClassicQuestion{}
	}
	if out.MultipleChoiceQuestions == nil {
		out.MultipleChoiceQuestions = []MultipleChoiceQuestion{}
	}
	if out.FillInTheBlank == nil {
		out.FillInTheBlank = []FillInBlankQuestion{}
	}
	return json.MarshalIndent(out, "", "    ")
}

func Decode(raw []byte) (*Quiz, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuiz, err)
	}
	for _, name := range requiredCollections {
		v, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformedQuiz, name)
		}
	}

	var q Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuiz, err)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}
