package collatz_test

import (
	"context"
	"testing"

	"github.com/aretw0/collatz"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	eng := collatz.New()
	assert.Equal(t, domain.DefaultGuard, eng.Guard())
	assert.Equal(t, domain.DefaultLimit, eng.Limit())
}

func TestNew_NonPositiveGuardIsRejected(t *testing.T) {
	for _, guard := range []int{0, -1} {
		eng := collatz.New(collatz.WithGuard(guard))
		assert.Equal(t, guard, eng.Guard())

		_, err := eng.Compute(context.Background(), 27, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = eng.StoppingTime(27)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		for _, err := range eng.Trajectory(27) {
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	}
}

func TestEngine_ComputeDefault(t *testing.T) {
	eng := collatz.New(collatz.WithLimit(5), collatz.WithGuard(500))
	assert.Equal(t, 500, eng.Guard())

	res, err := eng.ComputeDefault(context.Background(), 27)
	require.NoError(t, err)
	assert.Len(t, res.Sequence, 5)
	assert.True(t, res.Truncated)
	assert.Equal(t, 111, res.Steps)
	assert.Equal(t, int64(9232), res.MaxValue)
}

func TestEngine_ComputeUnbounded(t *testing.T) {
	eng := collatz.New(collatz.WithLimit(domain.Unbounded))

	res, err := eng.ComputeDefault(context.Background(), 27)
	require.NoError(t, err)
	assert.Len(t, res.Sequence, 112)
	assert.False(t, res.Truncated)
}

func TestEngine_Errors(t *testing.T) {
	eng := collatz.New(collatz.WithGuard(20))
	ctx := context.Background()

	_, err := eng.Compute(ctx, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = eng.Compute(ctx, 27, 10)
	assert.ErrorIs(t, err, domain.ErrGuardExceeded)

	_, err = eng.Step(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEngine_StoppingTimes(t *testing.T) {
	eng := collatz.New()

	st, err := eng.StoppingTime(6)
	require.NoError(t, err)
	assert.Equal(t, 8, st)

	tst, err := eng.TotalStoppingTime(6)
	require.NoError(t, err)
	assert.Equal(t, st, tst)

	seq, err := eng.Generate(6)
	require.NoError(t, err)
	assert.Equal(t, st, len(seq)-1)

	next, err := eng.Step(6)
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)
}
