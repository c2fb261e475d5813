package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/ports"
)

// Store persists the registered email under a fixed key.
type Store struct {
	kv  ports.KeyValueStore
	key string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the key the email is stored under.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore creates a Store backed by kv.
func NewStore(kv ports.KeyValueStore, opts ...StoreOption) *Store {
	s := &Store{
		kv:  kv,
		key: domain.RegistrationEmailKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Email returns the stored email. ok is false when nothing is stored.
func (s *Store) Email(ctx context.Context) (email string, ok bool, err error) {
	v, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read registration: %w", err)
	}
	return v, true, nil
}

// SetEmail writes email through to the backing store.
func (s *Store) SetEmail(ctx context.Context, email string) error {
	if err := s.kv.Set(ctx, s.key, email); err != nil {
		return fmt.Errorf("failed to save registration: %w", err)
	}
	return nil
}

// Clear removes the stored email.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear registration: %w", err)
	}
	return nil
}
