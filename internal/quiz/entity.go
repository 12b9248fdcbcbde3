package quiz

import (
	"errors"
	"fmt"
	"strings"
)

const ChoiceCount = 5

var ErrMalformedQuiz = errors.New("malformed quiz document")

type Kind string

const (
	KindClassic        Kind = "classic"
	KindMultipleChoice Kind = "mcq"
	KindFillInBlank    Kind = "fitb"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindClassic, KindMultipleChoice, KindFillInBlank:
		return true
	}
	return false
}

type ClassicQuestion struct {
	QuestionText  string `json:"question_text"`
	CorrectAnswer string `json:"correct_answer"`
}

type MultipleChoiceQuestion struct {
	QuestionText  string   `json:"question_text"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
}

type FillInBlankQuestion struct {
	QuestionText  string `json:"question_text"`
	CorrectAnswer string `json:"correct_answer"`
}

// Quiz is the persisted document. Field names are part of the file format.
type Quiz struct {
	ClassicQuestions        []ClassicQuestion        `json:"classic_questions"`
	MultipleChoiceQuestions []MultipleChoiceQuestion `json:"multiple_choice_questions"`
	FillInTheBlank          []FillInBlankQuestion    `json:"fill_in_the_blank"`
}

// Item is one entry of the flattened question list.
type Item struct {
	Kind          Kind     `json:"kind"`
	Text          string   `json:"question_text"`
	Choices       []string `json:"choices,omitempty"`
	CorrectAnswer string   `json:"-"`
}

func (q *Quiz) Count() int {
	return len(q.ClassicQuestions) + len(q.MultipleChoiceQuestions) + len(q.FillInTheBlank)
}

// Items flattens the quiz: classic, then multiple-choice, then fill-in-the-blank.
func (q *Quiz) Items() []Item {
	items := make([]Item, 0, q.Count())
	for _, c := range q.ClassicQuestions {
		items = append(items, Item{Kind: KindClassic, Text: c.QuestionText, CorrectAnswer: c.CorrectAnswer})
	}
	for _, m := range q.MultipleChoiceQuestions {
		choices := make([]string, len(m.Choices))
		copy(choices, m.Choices)
		items = append(items, Item{Kind: KindMultipleChoice, Text: m.QuestionText, Choices: choices, CorrectAnswer: m.CorrectAnswer})
	}
	for _, f := range q.FillInTheBlank {
		items = append(items, Item{Kind: KindFillInBlank, Text: f.QuestionText, CorrectAnswer: f.CorrectAnswer})
	}
	return items
}

func (q *Quiz) Validate() error {
	var problems []string

	for i, c := range q.ClassicQuestions {
		problems = append(problems, checkText("classic_questions", i, c.QuestionText, c.CorrectAnswer)...)
	}
	for i, m := range q.MultipleChoiceQuestions {
		problems = append(problems, checkText("multiple_choice_questions", i, m.QuestionText, m.CorrectAnswer)...)
		if len(m.Choices) != ChoiceCount {
			problems = append(problems, fmt.Sprintf("multiple_choice_questions[%d]: expected %d choices, got %d", i, ChoiceCount, len(m.Choices)))
		}
	}
	for i, f := range q.FillInTheBlank {
		problems = append(problems, checkText("fill_in_the_blank", i, f.QuestionText, f.CorrectAnswer)...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedQuiz, strings.Join(problems, "; "))
	}
	return nil
}

func checkText(collection string, i int, text, answer string) []string {
	var out []string
	if strings.TrimSpace(text) == "" {
		out = append(out, fmt.Sprintf("%s[%d]: empty question_text", collection, i))
	}
	if strings.TrimSpace(answer) == "" {
		out = append(out, fmt.Sprintf("%s[%d]: empty correct_answer", collection, i))
	}
	return out
}
