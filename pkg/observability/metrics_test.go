package observability_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/collatz"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	eng := collatz.New(collatz.WithGuard(100), collatz.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	_, _ = eng.Compute(ctx, 6, domain.Unbounded)
	_, _ = eng.Compute(ctx, 7, domain.Unbounded)
	_, _ = eng.Compute(ctx, 0, domain.Unbounded)
	_, _ = eng.Compute(ctx, 27, domain.Unbounded) // 111 steps > guard

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Computations.WithLabelValues(observability.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations.WithLabelValues(observability.OutcomeInvalidInput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations.WithLabelValues(observability.OutcomeGuardExceeded)))
	assert.Equal(t, 52.0, testutil.ToFloat64(m.MaxValue), "max value of 7's trajectory")

	count, err := testutil.GatherAndCount(reg, "collatz_steps")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_StatsRequests(t *testing.T) {
	m := observability.NewMetrics(nil)

	m.ObserveStatsRequest(200)
	m.ObserveStatsRequest(200)
	m.ObserveStatsRequest(404)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatsRequests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatsRequests.WithLabelValues("404")))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, observability.OutcomeOK},
		{domain.ErrInvalidInput, observability.OutcomeInvalidInput},
		{domain.ErrGuardExceeded, observability.OutcomeGuardExceeded},
		{fmt.Errorf("wrapped: %w", domain.ErrGuardExceeded), observability.OutcomeGuardExceeded},
		{domain.ErrOverflow, observability.OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Outcome(tt.err), "Outcome(%v)", tt.err)
	}
}
