package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/collatz/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the key used when no key is configured.
const DefaultKey = "collatz:state"

// Store implements ports.StateStore using a single Redis key.
type Store struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of the document.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithKey sets the key holding the document.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the key holding the document.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) updatedKey() string {
	return s.key + ":updated_at"
}

// Save writes the document and its update timestamp in one pipeline.
func (s *Store) Save(ctx context.Context, result *domain.SequenceResult) error {
	data, err := result.MarshalDocument()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key, data, s.ttl)
	pipe.Set(ctx, s.updatedKey(), time.Now().UTC().Format(time.RFC3339), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the raw document.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// UpdatedAt returns when the document was last saved.
func (s *Store) UpdatedAt(ctx context.Context) (time.Time, error) {
	val, err := s.client.Get(ctx, s.updatedKey()).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return time.Time{}, domain.ErrStateNotFound
		}
		return time.Time{}, fmt.Errorf("failed to get from redis: %w", err)
	}
	return time.Parse(time.RFC3339, val)
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key, s.updatedKey()).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
