// Package scoring splits the 100 available points across a quiz's questions.
package scoring

import "errors"

const Total = 100

var ErrNoQuestions = errors.New("cannot allocate points to zero questions")

// Allocate returns n point values summing to Total that differ by at most one.
// The extra points of the remainder go to the first questions.
func Allocate(n int) ([]int, error) {
	if n <= 0 {
		return nil, ErrNoQuestions
	}

	base := Total / n
	remainder := Total % n

	points := make([]int, n)
	for i := range points {
		points[i] = base
		if i < remainder {
			points[i]++
		}
	}
	return points, nil
}
