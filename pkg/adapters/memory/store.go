package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/aretw0/collatz/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data []byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFromBytes creates a store pre-loaded with a raw document.
// The bytes are kept as given, which lets callers exercise malformed documents.
func NewStoreFromBytes(data []byte) *Store {
	return &Store{data: bytes.Clone(data)}
}

// Save encodes the result, so later changes to it never reach the store.
func (s *Store) Save(ctx context.Context, result *domain.SequenceResult) error {
	data, err := result.MarshalDocument()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Load returns a copy of the stored document.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrStateNotFound
	}
	return bytes.Clone(s.data), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
