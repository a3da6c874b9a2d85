package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCompute      EventType = "compute"
	EventComputeError EventType = "compute_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ComputeEvent describes a finished computation.
// Result is nil when Err is set.
type ComputeEvent struct {
	EventBase
	Seed     int64           `json:"seed"`
	Limit    int             `json:"limit"`
	Guard    int             `json:"guard"`
	Duration time.Duration   `json:"duration"`
	Result   *SequenceResult `json:"result,omitempty"`
	Err      error           `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCompute      func(context.Context, *ComputeEvent)
	OnComputeError func(context.Context, *ComputeEvent)
}
