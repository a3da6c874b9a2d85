package ports

import (
	"context"

	"github.com/aretw0/collatz/pkg/domain"
)

// StateStore defines the interface for persisting the exported result document.
// A store addresses exactly one document (a file path, a Redis key, ...).
type StateStore interface {
	// Save writes the result as the exported JSON document, replacing any previous one.
	Save(ctx context.Context, result *domain.SequenceResult) error

	// Load returns the raw persisted document, byte for byte.
	// Returns domain.ErrStateNotFound if nothing has been persisted.
	// The bytes are not validated: documents written by other tools are served as they are.
	Load(ctx context.Context) ([]byte, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context) error
}
