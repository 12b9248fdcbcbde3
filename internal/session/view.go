package session

import (
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/quiz"
)

const (
	InputSingleSelect = "single_select"
	InputText         = "text"
)

type QuestionView struct {
	Kind    quiz.Kind `json:"kind"`
	Text    string    `json:"text"`
	Choices []string  `json:"choices,omitempty"`
	Input   string    `json:"input"`
	Points  int       `json:"points"`
}

// View is everything a surface needs to render the session.
type View struct {
	SessionID  string        `json:"session_id"`
	State      State         `json:"state"`
	Index      int           `json:"index"`
	Number     int           `json:"number,omitempty"`
	Total      int           `json:"total"`
	Score      int           `json:"score"`
	Question   *QuestionView `json:"question,omitempty"`
	ReadyAt    *time.Time    `json:"ready_at,omitempty"`
	CanRestart bool          `json:"can_restart"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID: s.id.String(),
		State:     s.stateLocked(),
		Index:     s.index,
		Total:     s.deck.Len(),
		Score:     s.score,
	}

	if v.State == StateFinished {
		v.CanRestart = true
		return v
	}

	item := s.deck.Items[s.index]
	q := &QuestionView{
		Kind:   item.Kind,
		Text:   item.Text,
		Input:  InputText,
		Points: s.deck.Points[s.index],
	}
	if item.Kind == quiz.KindMultipleChoice {
		q.Input = InputSingleSelect
		q.Choices = append([]string(nil), item.Choices...)
	}
	v.Number = s.index + 1
	v.Question = q

	if now := s.now(); now.Before(s.readyAt) {
		readyAt := s.readyAt
		v.ReadyAt = &readyAt
	}
	return v
}
