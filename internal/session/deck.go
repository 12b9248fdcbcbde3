package session

import (
	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
	"github.com/saulo-duarte/chronos-quiz/internal/scoring"
)

// Deck is the loaded quiz in presentation order with the points each question is worth.
// It is built once at startup and shared read-only by every session.
type Deck struct {
	Items  []quiz.Item
	Points []int
}

func NewDeck(q *quiz.Quiz) (*Deck, error) {
	items := q.Items()
	if len(items) == 0 {
		return &Deck{}, nil
	}

	points, err := scoring.Allocate(len(items))
	if err != nil {
		return nil, err
	}
	return &Deck{Items: items, Points: points}, nil
}

func (d *Deck) Len() int {
	return len(d.Items)
}

type Summary struct {
	Total     int            `json:"total"`
	Points    []int          `json:"points"`
	ByKind    map[string]int `json:"by_kind"`
	MaxScore  int            `json:"max_score"`
	EmptyDeck bool           `json:"empty_deck"`
}

func (d *Deck) Summary() Summary {
	byKind := map[string]int{
		string(quiz.KindClassic):        0,
		string(quiz.KindMultipleChoice): 0,
		string(quiz.KindFillInBlank):    0,
	}
	for _, it := range d.Items {
		byKind[string(it.Kind)]++
	}

	points := d.Points
	if points == nil {
		points = []int{}
	}
	maxScore := 0
	for _, p := range points {
		maxScore += p
	}

	return Summary{
		Total:     d.Len(),
		Points:    points,
		ByKind:    byKind,
		MaxScore:  maxScore,
		EmptyDeck: d.Len() == 0,
	}
}
