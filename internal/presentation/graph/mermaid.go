package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/collatz/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the retained trajectory.
// It applies semantic styling:
// - Seed: ((Circle))
// - Terminal 1: (((Double circle)))
// - Peak (max value): {{Hexagon}}
// - Default: [Rectangle]
// Edges are labelled with the rule that produced the next value. A truncated
// result ends in a dotted edge to a node counting the omitted steps.
func GenerateMermaid(r *domain.SequenceResult) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, v := range r.Sequence {
		// IDs are positional; values can exceed Mermaid's identifier rules.
		id := nodeID(i)

		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case v == 1:
			opener, closer = "(((", ")))"
		case v == r.MaxValue:
			opener, closer = "{{", "}}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", id, opener, v, closer))

		if i > 0 {
			rule := "n/2"
			if r.Sequence[i-1]%2 != 0 {
				rule = "3n+1"
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(i-1), rule, id))
		}
	}

	if r.Truncated && len(r.Sequence) > 0 {
		omitted := r.Steps - (len(r.Sequence) - 1)
		sb.WriteString(fmt.Sprintf("    more[/\"%d more steps\"/]\n", omitted))
		sb.WriteString(fmt.Sprintf("    %s -.-> more\n", nodeID(len(r.Sequence)-1)))
	}

	for i, v := range r.Sequence {
		if v == r.MaxValue {
			sb.WriteString("    classDef peak fill:#fde68a,stroke:#d97706\n")
			sb.WriteString(fmt.Sprintf("    class %s peak\n", nodeID(i)))
			break
		}
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("n%d", i)
}
