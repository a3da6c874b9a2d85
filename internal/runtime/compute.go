package runtime

import (
	"fmt"

	"github.com/aretw0/collatz/pkg/domain"
)

// Compute walks the trajectory of seed and summarises it.
//
// At most limit values are retained (domain.Unbounded keeps all of them);
// Steps and MaxValue always cover the full trajectory. The walk is bounded by
// guard step applications and fails with domain.ErrGuardExceeded rather than
// returning a partial result.
func Compute(seed int64, limit, guard int) (*domain.SequenceResult, error) {
	if err := validate(seed, guard); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, domain.ErrInvalidInput)
	}

	current := seed
	result := &domain.SequenceResult{
		Start:    seed,
		MaxValue: seed,
		Sequence: []int64{seed},
	}

	for current != 1 {
		if result.Steps == guard {
			return nil, guardError(seed, guard)
		}

		next, err := Step(current)
		if err != nil {
			return nil, err
		}
		current = next
		result.Steps++
		result.MaxValue = max(result.MaxValue, current)

		if limit == domain.Unbounded || len(result.Sequence) < limit {
			result.Sequence = append(result.Sequence, current)
		} else {
			result.Truncated = true
		}
	}

	return result, nil
}

// StoppingTime returns the number of steps seed needs to first reach 1.
func StoppingTime(seed int64, guard int) (int, error) {
	r, err := Compute(seed, 1, guard)
	if err != nil {
		return 0, err
	}
	return r.StoppingTime(), nil
}

// TotalStoppingTime is the same count as StoppingTime; trajectories halt at 1.
func TotalStoppingTime(seed int64, guard int) (int, error) {
	r, err := Compute(seed, 1, guard)
	if err != nil {
		return 0, err
	}
	return r.TotalStoppingTime(), nil
}
