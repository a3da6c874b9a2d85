package domain

const (
	// Unbounded disables display truncation when used as a limit.
	Unbounded = 0

	// DefaultGuard is the maximum number of step applications permitted per computation.
	DefaultGuard = 1_000_000

	// DefaultLimit is the number of values retained by interactive callers (CLI, explorer).
	DefaultLimit = 256
)

// Field names of the exported JSON document.
const (
	KeyStartValue = "start_value"
	KeySteps      = "steps"
	KeyMaxValue   = "max_value"
	KeyTruncated  = "truncated"
	KeySequence   = "sequence"
)
