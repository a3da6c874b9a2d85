package runtime

import (
	"fmt"
	"iter"
	"math"

	"github.com/aretw0/collatz/pkg/domain"
)

// maxOddOperand is the largest odd value whose successor 3n+1 fits in an int64.
const maxOddOperand = (math.MaxInt64 - 1) / 3

// Step returns the value following n: n/2 when n is even, 3n+1 otherwise.
func Step(n int64) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("step %d: %w", n, domain.ErrInvalidInput)
	}
	if n%2 == 0 {
		return n / 2, nil
	}
	if n > maxOddOperand {
		return 0, fmt.Errorf("step %d: %w", n, domain.ErrOverflow)
	}
	return 3*n + 1, nil
}

// Trajectory lazily yields the values from start down to the first 1, inclusive.
// The sequence is restartable: each range over it walks again from start.
//
// Errors are yielded as the last pair, with a zero value. The walk stops with
// domain.ErrGuardExceeded after guard step applications that did not reach 1.
func Trajectory(start int64, guard int) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		if err := validate(start, guard); err != nil {
			yield(0, err)
			return
		}

		current := start
		if !yield(current, nil) {
			return
		}
		for steps := 0; current != 1; steps++ {
			if steps == guard {
				yield(0, guardError(start, guard))
				return
			}
			next, err := Step(current)
			if err != nil {
				yield(0, err)
				return
			}
			current = next
			if !yield(current, nil) {
				return
			}
		}
	}
}

// Generate returns the full trajectory of start as a slice.
func Generate(start int64, guard int) ([]int64, error) {
	var values []int64
	for v, err := range Trajectory(start, guard) {
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func validate(start int64, guard int) error {
	if start < 1 {
		return fmt.Errorf("seed %d: %w", start, domain.ErrInvalidInput)
	}
	if guard < 1 {
		return fmt.Errorf("guard %d: %w", guard, domain.ErrInvalidInput)
	}
	return nil
}

func guardError(start int64, guard int) error {
	return fmt.Errorf("seed %d after %d steps: %w", start, guard, domain.ErrGuardExceeded)
}
