package runtime_test

import (
	"math"
	"testing"

	"github.com/aretw0/collatz/internal/runtime"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{1, 4},
		{2, 1},
		{3, 10},
		{6, 3},
		{27, 82},
		{9232, 4616},
		{math.MaxInt64 - 1, (math.MaxInt64 - 1) / 2},
	}

	for _, tt := range tests {
		got, err := runtime.Step(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Step(%d)", tt.in)
	}
}

func TestStep_InvalidInput(t *testing.T) {
	for _, n := range []int64{0, -1, -6, math.MinInt64} {
		_, err := runtime.Step(n)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "Step(%d)", n)
	}
}

func TestStep_Overflow(t *testing.T) {
	_, err := runtime.Step(math.MaxInt64)
	assert.ErrorIs(t, err, domain.ErrOverflow)

	// Largest odd operand that still fits.
	got, err := runtime.Step(3074457345618258601)
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775804), got)

	_, err = runtime.Step(3074457345618258603)
	assert.ErrorIs(t, err, domain.ErrOverflow)
}

func TestGenerate(t *testing.T) {
	got, err := runtime.Generate(6, domain.DefaultGuard)
	require.NoError(t, err)

	want := []int64{6, 3, 10, 5, 16, 8, 4, 2, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate(6) mismatch (-want +got):\n%s", diff)
	}

	one, err := runtime.Generate(1, domain.DefaultGuard)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, one)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := runtime.Generate(0, domain.DefaultGuard)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runtime.Generate(-27, domain.DefaultGuard)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runtime.Generate(27, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = runtime.Generate(27, 50)
	assert.ErrorIs(t, err, domain.ErrGuardExceeded)
}

func TestTrajectory_Restartable(t *testing.T) {
	seq := runtime.Trajectory(27, domain.DefaultGuard)

	collect := func() []int64 {
		var out []int64
		for v, err := range seq {
			require.NoError(t, err)
			out = append(out, v)
		}
		return out
	}

	first := collect()
	second := collect()
	assert.Len(t, first, 112)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second walk differs (-first +second):\n%s", diff)
	}
}

func TestTrajectory_EarlyBreak(t *testing.T) {
	var got []int64
	for v, err := range runtime.Trajectory(27, domain.DefaultGuard) {
		require.NoError(t, err)
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int64{27, 82, 41}, got)
}

func TestTrajectory_GuardExceeded(t *testing.T) {
	var values []int64
	var last error
	for v, err := range runtime.Trajectory(27, 10) {
		if err != nil {
			last = err
			break
		}
		values = append(values, v)
	}

	assert.ErrorIs(t, last, domain.ErrGuardExceeded)
	// Seed plus one value per permitted step.
	assert.Len(t, values, 11)
}

func TestTrajectory_InvalidSeed(t *testing.T) {
	pairs := 0
	for v, err := range runtime.Trajectory(0, domain.DefaultGuard) {
		pairs++
		assert.Zero(t, v)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 1, pairs)
}
