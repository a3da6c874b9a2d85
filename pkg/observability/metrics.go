package observability

import (
	"context"
	"errors"
	"strconv"

	"github.com/aretw0/collatz/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of collatz_computations_total.
const (
	OutcomeOK            = "ok"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeGuardExceeded = "guard_exceeded"
	OutcomeError         = "error"
)

// Metrics groups the collectors exported by the application.
type Metrics struct {
	Computations  *prometheus.CounterVec
	Steps         prometheus.Histogram
	MaxValue      prometheus.Gauge
	StatsRequests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collatz_computations_total",
				Help: "Total number of trajectory computations by outcome",
			},
			[]string{"outcome"},
		),
		Steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "collatz_steps",
				Help:    "Stopping time of computed trajectories",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		MaxValue: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "collatz_last_max_value",
				Help: "Maximum value reached by the most recent trajectory",
			},
		),
		StatsRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collatz_stats_requests_total",
				Help: "Total number of stats responder requests by status code",
			},
			[]string{"status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Computations, m.Steps, m.MaxValue, m.StatsRequests)
	}
	return m
}

// Hooks returns engine lifecycle hooks that record computations.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompute: func(ctx context.Context, e *domain.ComputeEvent) {
			m.Computations.WithLabelValues(OutcomeOK).Inc()
			m.Steps.Observe(float64(e.Result.Steps))
			m.MaxValue.Set(float64(e.Result.MaxValue))
		},
		OnComputeError: func(ctx context.Context, e *domain.ComputeEvent) {
			m.Computations.WithLabelValues(Outcome(e.Err)).Inc()
		},
	}
}

// ObserveStatsRequest records a stats responder reply.
func (m *Metrics) ObserveStatsRequest(status int) {
	m.StatsRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// Outcome maps an engine error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, domain.ErrGuardExceeded):
		return OutcomeGuardExceeded
	default:
		return OutcomeError
	}
}
