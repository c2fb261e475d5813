package cli

import (
	"fmt"

	"github.com/aretw0/waitlist/internal/adapters/file"
	"github.com/aretw0/waitlist/internal/config"
	"github.com/aretw0/waitlist/pkg/adapters/memory"
	"github.com/aretw0/waitlist/pkg/adapters/redis"
	"github.com/aretw0/waitlist/pkg/persistence/middleware"
	"github.com/aretw0/waitlist/pkg/ports"
)

// Backend is the store selected by the configuration.
type Backend struct {
	Store ports.KeyValueStore
	// Locker is set when the backend is shared between processes (redis).
	Locker ports.DistributedLocker

	close func() error
}

// Close releases the backend connection, if any.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend builds the configured store, encrypted at rest when an
// encryption key is configured.
func OpenBackend(cfg config.Config) (*Backend, error) {
	b := &Backend{}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		b.Store = memory.NewStore()
	case config.BackendFile:
		b.Store = file.New(cfg.Store.Path)
	case config.BackendRedis:
		rc := cfg.Store.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix),
			redis.WithTTL(rc.TTL),
		)
		b.Store = store
		b.Locker = redis.NewLocker(store.Client(), rc.Prefix)
		b.close = store.Close
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	key, err := cfg.Key()
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if key != nil {
		b.Store = middleware.Chain(b.Store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: key,
		}))
	}
	return b, nil
}
