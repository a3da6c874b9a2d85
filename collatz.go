package collatz

import (
	"context"
	"io"
	"iter"
	"log/slog"

	"github.com/aretw0/collatz/internal/runtime"
	"github.com/aretw0/collatz/pkg/domain"
)

// Engine is the high-level entry point for the Collatz library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	guard   int
	limit   int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithGuard sets the guard rail (maximum step applications per computation).
func WithGuard(guard int) Option {
	return func(e *Engine) {
		e.guard = guard
	}
}

// WithLimit sets the default display limit used by ComputeDefault.
// domain.Unbounded keeps every value.
func WithLimit(limit int) Option {
	return func(e *Engine) {
		e.limit = limit
	}
}

// New initializes a new Collatz Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		guard: domain.DefaultGuard,
		limit: domain.DefaultLimit,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithGuard(eng.guard),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng
}

// Compute walks the trajectory of seed, retaining at most limit values.
// Steps and MaxValue always describe the full trajectory.
func (e *Engine) Compute(ctx context.Context, seed int64, limit int) (*domain.SequenceResult, error) {
	return e.runtime.Compute(ctx, seed, limit)
}

// ComputeDefault is Compute with the configured default limit.
func (e *Engine) ComputeDefault(ctx context.Context, seed int64) (*domain.SequenceResult, error) {
	return e.runtime.Compute(ctx, seed, e.limit)
}

// Step returns the value following n.
func (e *Engine) Step(n int64) (int64, error) {
	return runtime.Step(n)
}

// Trajectory lazily yields the full trajectory of seed; see runtime.Trajectory.
func (e *Engine) Trajectory(seed int64) iter.Seq2[int64, error] {
	return e.runtime.Trajectory(seed)
}

// Generate returns the full trajectory of seed.
func (e *Engine) Generate(seed int64) ([]int64, error) {
	return e.runtime.Generate(seed)
}

// StoppingTime returns the number of steps seed needs to first reach 1.
func (e *Engine) StoppingTime(seed int64) (int, error) {
	return e.runtime.StoppingTime(seed)
}

// TotalStoppingTime returns the same count as StoppingTime.
func (e *Engine) TotalStoppingTime(seed int64) (int, error) {
	return e.runtime.TotalStoppingTime(seed)
}

// Guard returns the configured guard rail.
func (e *Engine) Guard() int {
	return e.runtime.Guard()
}

// Limit returns the configured default display limit.
func (e *Engine) Limit() int {
	return e.limit
}
