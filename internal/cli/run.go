package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/collatz/internal/presentation/graph"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/ports"
)

// Engine is the subset of the engine the commands need.
type Engine interface {
	Compute(ctx context.Context, seed int64, limit int) (*domain.SequenceResult, error)
}

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Seed          int64
	Limit         int
	PrintSequence bool
	Format        string
	// Stores receive the exported document after a successful computation.
	Stores []ports.StateStore
	// Markdown renders markdown for FormatMarkdown. Nil prints it raw.
	Markdown func(string) (string, error)
}

// Execute computes the trajectory, prints it and exports it.
func Execute(ctx context.Context, eng Engine, w io.Writer, opts RunOptions) (*domain.SequenceResult, error) {
	result, err := eng.Compute(ctx, opts.Seed, opts.Limit)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case "", FormatText:
		err = WriteText(w, result, opts.PrintSequence)
	case FormatJSON:
		err = WriteJSON(w, result)
	case FormatMarkdown:
		md := Markdown(result, opts.PrintSequence)
		if opts.Markdown != nil {
			md, err = opts.Markdown(md)
			if err != nil {
				return nil, fmt.Errorf("failed to render markdown: %w", err)
			}
		}
		_, err = io.WriteString(w, md)
	case FormatMermaid:
		_, err = io.WriteString(w, graph.GenerateMermaid(result))
	default:
		return nil, fmt.Errorf("unknown format %q (expected text, markdown, json or mermaid)", opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	for _, store := range opts.Stores {
		if err := store.Save(ctx, result); err != nil {
			return nil, fmt.Errorf("export failed: %w", err)
		}
	}
	return result, nil
}
