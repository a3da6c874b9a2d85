package runtime

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/aretw0/collatz/pkg/domain"
)

// Engine is the configured sequence engine.
// It carries no mutable state, so a single Engine may serve concurrent callers.
type Engine struct {
	guard  int
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithGuard sets the maximum number of step applications per computation.
// A guard below 1 makes every computation fail with domain.ErrInvalidInput.
func WithGuard(guard int) EngineOption {
	return func(e *Engine) {
		e.guard = guard
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		guard:  domain.DefaultGuard,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Guard returns the configured guard rail.
func (e *Engine) Guard() int {
	return e.guard
}

// Compute runs a bounded computation and fires the lifecycle hooks.
// The context is only handed to the hooks; the computation itself is never interrupted.
func (e *Engine) Compute(ctx context.Context, seed int64, limit int) (*domain.SequenceResult, error) {
	began := time.Now()
	result, err := Compute(seed, limit, e.guard)

	event := &domain.ComputeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCompute},
		Seed:      seed,
		Limit:     limit,
		Guard:     e.guard,
		Duration:  time.Since(began),
		Result:    result,
		Err:       err,
	}

	if err != nil {
		event.Type = domain.EventComputeError
		e.logger.Warn("compute failed", "seed", seed, "limit", limit, "guard", e.guard, "error", err)
		if e.hooks.OnComputeError != nil {
			e.hooks.OnComputeError(ctx, event)
		}
		return nil, err
	}

	e.logger.Debug("compute",
		"seed", seed,
		"steps", result.Steps,
		"max_value", result.MaxValue,
		"truncated", result.Truncated,
		"duration", event.Duration,
	)
	if e.hooks.OnCompute != nil {
		e.hooks.OnCompute(ctx, event)
	}
	return result, nil
}

// Trajectory lazily walks seed using the configured guard.
func (e *Engine) Trajectory(seed int64) iter.Seq2[int64, error] {
	return Trajectory(seed, e.guard)
}

// Generate returns the full trajectory using the configured guard.
func (e *Engine) Generate(seed int64) ([]int64, error) {
	return Generate(seed, e.guard)
}

// StoppingTime returns the stopping time using the configured guard.
func (e *Engine) StoppingTime(seed int64) (int, error) {
	return StoppingTime(seed, e.guard)
}

// TotalStoppingTime returns the total stopping time using the configured guard.
func (e *Engine) TotalStoppingTime(seed int64) (int, error) {
	return TotalStoppingTime(seed, e.guard)
}
