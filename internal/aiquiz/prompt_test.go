package aiquiz_test

import (
	"strings"
	"testing"

	"github.com/saulo-duarte/chronos-quiz/internal/aiquiz"
)

func TestDistribution(t *testing.T) {
	tests := []struct {
		count int
		want  [3]int
	}{
		{0, [3]int{0, 0, 0}},
		{1, [3]int{0, 0, 1}},
		{2, [3]int{0, 1, 1}},
		{3, [3]int{1, 1, 1}},
		{13, [3]int{4, 4, 5}},
		{14, [3]int{4, 5, 5}},
		{100, [3]int{33, 33, 34}},
	}

	for _, tt := range tests {
		if got := aiquiz.Distribution(tt.count); got != tt.want {
			t.Errorf("Distribution(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	t.Run("FirstAttempt", func(t *testing.T) {
		p := aiquiz.BuildUserPrompt(13, nil)
		if !strings.Contains(p, "exactly 13 questions") || !strings.Contains(p, "5 fill-in-the-blank") {
			t.Errorf("unexpected prompt: %s", p)
		}
		if strings.Contains(p, "rejected") {
			t.Errorf("first prompt should not mention rejections: %s", p)
		}
	})

	t.Run("WithCorrections", func(t *testing.T) {
		p := aiquiz.BuildUserPrompt(6, []string{"expected 6 questions, got 5"})
		if !strings.Contains(p, "1. expected 6 questions, got 5") {
			t.Errorf("correction missing from prompt: %s", p)
		}
	})
}
