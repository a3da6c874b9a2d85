package cli

import (
	"errors"

	"github.com/aretw0/collatz/internal/adapters/file"
	"github.com/aretw0/collatz/internal/adapters/redis"
	"github.com/aretw0/collatz/internal/config"
	"github.com/aretw0/collatz/pkg/ports"
)

// OpenStore selects the state store: Redis when an address is configured, the state file otherwise.
// The returned close function is always safe to call.
func OpenStore(cfg config.Config) (ports.StateStore, func() error) {
	if cfg.Redis.Addr != "" {
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithKey(cfg.Redis.Key),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return store, store.Close
	}
	return file.New(cfg.Serve.StatePath), func() error { return nil }
}

// OpenExportStores returns the stores a run exports to: the JSON file at path when set,
// and the configured Redis key when toRedis is set. The close function releases them all.
func OpenExportStores(cfg config.Config, path string, toRedis bool) ([]ports.StateStore, func() error, error) {
	var stores []ports.StateStore
	if path != "" {
		stores = append(stores, file.New(path))
	}
	if !toRedis {
		return stores, func() error { return nil }, nil
	}
	if cfg.Redis.Addr == "" {
		return nil, nil, errors.New("--export-redis needs redis.addr in the config file")
	}

	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithKey(cfg.Redis.Key),
		redis.WithTTL(cfg.Redis.TTL),
	)
	return append(stores, store), store.Close, nil
}
