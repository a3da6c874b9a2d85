package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// SequenceResult summarises a Collatz trajectory.
// It is built once by the engine and must be treated as read-only afterwards.
type SequenceResult struct {
	Start     int64   `json:"start_value"`
	Steps     int     `json:"steps"`
	MaxValue  int64   `json:"max_value"`
	Truncated bool    `json:"truncated"`
	Sequence  []int64 `json:"sequence"`
}

// StoppingTime returns the number of steps needed to first reach 1.
func (r *SequenceResult) StoppingTime() int {
	return r.Steps
}

// TotalStoppingTime is identical to StoppingTime: trajectories halt at 1,
// they never continue around the 4 → 2 → 1 cycle.
func (r *SequenceResult) TotalStoppingTime() int {
	return r.StoppingTime()
}

// Len returns the number of retained values.
func (r *SequenceResult) Len() int {
	return len(r.Sequence)
}

// Summary returns a short human-readable report.
func (r *SequenceResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start: %d\n", r.Start)
	fmt.Fprintf(&b, "Steps to 1: %d\n", r.Steps)
	fmt.Fprintf(&b, "Max value: %d\n", r.MaxValue)
	fmt.Fprintf(&b, "Sequence length: %d", len(r.Sequence))
	if r.Truncated {
		b.WriteString("\n(Sequence trimmed to display limit)")
	}
	return b.String()
}

// Clone returns a deep copy, so stores can hand out results without sharing the backing array.
func (r *SequenceResult) Clone() *SequenceResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Sequence = slices.Clone(r.Sequence)
	return &c
}

// MarshalDocument encodes the result as the exported JSON document
// (start_value, steps, max_value, truncated, sequence), indented by two spaces.
func (r *SequenceResult) MarshalDocument() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes an exported JSON document.
func UnmarshalDocument(data []byte) (*SequenceResult, error) {
	var r SequenceResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &r, nil
}
