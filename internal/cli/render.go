package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/collatz/pkg/domain"
)

// Output formats accepted by Render.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatMermaid  = "mermaid"
)

// JoinSequence renders values separated by sep.
func JoinSequence(values []int64, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, sep)
}

// WriteText prints the summary and, optionally, the retained sequence.
func WriteText(w io.Writer, r *domain.SequenceResult, printSequence bool) error {
	if _, err := fmt.Fprintln(w, r.Summary()); err != nil {
		return err
	}
	if printSequence {
		_, err := fmt.Fprintf(w, "\nSequence:\n%s\n", JoinSequence(r.Sequence, ", "))
		return err
	}
	return nil
}

// ArrowSeparator joins trajectory values in the sequence report.
const ArrowSeparator = " → "

// WriteSequenceSummary prints the trajectory followed by its stopping times.
func WriteSequenceSummary(w io.Writer, r *domain.SequenceResult) error {
	_, err := fmt.Fprintf(w, "Sequence for %d: %s\nStopping time: %d\nTotal stopping time: %d\n",
		r.Start, JoinSequence(r.Sequence, ArrowSeparator), r.StoppingTime(), r.TotalStoppingTime())
	return err
}

// WriteJSON prints the exported document shape.
func WriteJSON(w io.Writer, r *domain.SequenceResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Markdown builds a markdown report for terminal rendering.
func Markdown(r *domain.SequenceResult, printSequence bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Collatz trajectory of %d\n\n", r.Start)
	b.WriteString("| Statistic | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Steps to 1 | %d |\n", r.Steps)
	fmt.Fprintf(&b, "| Max value | %d |\n", r.MaxValue)
	fmt.Fprintf(&b, "| Sequence length | %d |\n", len(r.Sequence))
	if r.Truncated {
		b.WriteString("\n> Sequence trimmed to display limit\n")
	}
	if printSequence {
		fmt.Fprintf(&b, "\n```\n%s\n```\n", JoinSequence(r.Sequence, " → "))
	}
	return b.String()
}
