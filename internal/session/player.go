package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/saulo-duarte/chronos-quiz/internal/evaluator"
)

// Player runs a session in a terminal: one question at a time, feedback after
// each answer, and the final score with a restart prompt.
type Player struct {
	session *Session
	in      *bufio.Scanner
	out     io.Writer
	sleep   func(time.Duration)
}

func NewPlayer(s *Session, in io.Reader, out io.Writer) *Player {
	return &Player{
		session: s,
		in:      bufio.NewScanner(in),
		out:     out,
		sleep:   time.Sleep,
	}
}

func (p *Player) SetSleep(fn func(time.Duration)) {
	p.sleep = fn
}

// Run returns when the user declines a restart or input ends.
func (p *Player) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		v := p.session.View()
		if v.State == StateFinished {
			fmt.Fprintf(p.out, "\n🎉 Quiz finished! Your score: %d\n", v.Score)
			line, ok := p.prompt("Restart? [y/N]: ")
			if !ok || !strings.EqualFold(line, "y") {
				return nil
			}
			p.session.Restart()
			continue
		}

		answer, ok := p.ask(v)
		if !ok {
			return nil
		}

		outcome, err := p.session.Submit(ctx, v.Index, answer)
		if err != nil {
			if errors.Is(err, evaluator.ErrComparison) {
				fmt.Fprintf(p.out, "⚠️  Could not evaluate your answer, please try again (%v)\n", err)
				continue
			}
			if errors.Is(err, ErrEmptyAnswer) || errors.Is(err, ErrNotReady) {
				continue
			}
			return err
		}

		if outcome.Passed {
			fmt.Fprintf(p.out, "✅ %s\n", outcome.Feedback)
		} else {
			fmt.Fprintf(p.out, "❌ %s\n", outcome.Feedback)
		}
		p.sleep(outcome.Pause)
	}
}

func (p *Player) ask(v View) (string, bool) {
	q := v.Question
	fmt.Fprintf(p.out, "\nQuestion %d of %d (%d points):\n%s\n", v.Number, v.Total, q.Points, q.Text)

	if q.Input != InputSingleSelect {
		return p.prompt("Your answer: ")
	}

	for i, c := range q.Choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
	}
	for {
		line, ok := p.prompt("Choose an answer: ")
		if !ok {
			return "", false
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n >= 1 && n <= len(q.Choices) {
				return q.Choices[n-1], true
			}
			fmt.Fprintf(p.out, "Pick a number between 1 and %d.\n", len(q.Choices))
			continue
		}
		if line != "" {
			return line, true
		}
	}
}

func (p *Player) prompt(label string) (string, bool) {
	for {
		fmt.Fprint(p.out, label)
		if !p.in.Scan() {
			return "", false
		}
		line := strings.TrimSpace(p.in.Text())
		if line != "" || strings.HasPrefix(label, "Restart") {
			return line, true
		}
	}
}
