package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/ports"
)

const (
	entryPrefix = "roster:entry:"
	// capacityLock guards the count-then-insert sequence when a capacity is set.
	capacityLock   = "roster:capacity"
	defaultLockTTL = 30 * time.Second
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Roster records who is on the waitlist.
type Roster struct {
	store    ports.KeyValueStore
	capacity int // 0 means unlimited

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Entry is one stored registration.
type Entry struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Option configures the Roster.
type Option func(*Roster)

// WithCapacity limits the number of entries. Zero or less means unlimited.
func WithCapacity(n int) Option {
	return func(r *Roster) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(r *Roster) {
		r.locker = locker
	}
}

// WithLockTTL sets how long a distributed lock survives an unreleased holder.
func WithLockTTL(ttl time.Duration) Option {
	return func(r *Roster) {
		if ttl > 0 {
			r.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Roster.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Roster) {
		r.logger = logger
	}
}

// New creates a Roster over store.
func New(store ports.KeyValueStore, opts ...Option) *Roster {
	r := &Roster{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: defaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Capacity returns the configured limit, 0 if unlimited.
func (r *Roster) Capacity() int {
	return r.capacity
}

func entryKey(email string) string {
	return entryPrefix + strings.ToLower(strings.TrimSpace(email))
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(name) after unlocking.
func (r *Roster) acquire(name string) *lockEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[name]
	if !exists {
		entry = &lockEntry{}
		r.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (r *Roster) release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[name]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(r.locks, name)
	}
}

// withLock executes fn while holding the named lock, locally and, if configured, remotely.
func (r *Roster) withLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := r.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		r.release(name)
	}()

	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx, name, r.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"lock", name,
					"error", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// lockFor picks the lock serializing writes for email.
// With a capacity every insert competes for the same slot count.
func (r *Roster) lockFor(email string) string {
	if r.capacity > 0 {
		return capacityLock
	}
	return entryKey(email)
}

// Add puts reg on the waitlist.
// Returns domain.ErrAlreadyRegistered or domain.ErrWaitlistFull.
func (r *Roster) Add(ctx context.Context, reg domain.Registration) (Entry, error) {
	var entry Entry
	err := r.withLock(ctx, r.lockFor(reg.Email), func(ctx context.Context) error {
		key := entryKey(reg.Email)
		_, err := r.store.Get(ctx, key)
		if err == nil {
			return domain.ErrAlreadyRegistered
		}
		if !errors.Is(err, domain.ErrKeyNotFound) {
			return fmt.Errorf("failed to check roster entry: %w", err)
		}

		if r.capacity > 0 {
			n, err := r.Count(ctx)
			if err != nil {
				return err
			}
			if n >= r.capacity {
				return domain.ErrWaitlistFull
			}
		}

		entry = Entry{Name: reg.Name, Email: reg.Email, RegisteredAt: r.now().UTC()}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to encode roster entry: %w", err)
		}
		if err := r.store.Set(ctx, key, string(data)); err != nil {
			return fmt.Errorf("failed to save roster entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	r.logger.Info("roster entry added", "email", reg.Email)
	return entry, nil
}

// Remove deletes email from the waitlist. Removing an absent email is not an error.
func (r *Roster) Remove(ctx context.Context, email string) error {
	return r.withLock(ctx, r.lockFor(email), func(ctx context.Context) error {
		if err := r.store.Delete(ctx, entryKey(email)); err != nil {
			return fmt.Errorf("failed to remove roster entry: %w", err)
		}
		return nil
	})
}

// Contains reports whether email is on the waitlist.
func (r *Roster) Contains(ctx context.Context, email string) (bool, error) {
	_, err := r.store.Get(ctx, entryKey(email))
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the entry for email, or domain.ErrKeyNotFound.
func (r *Roster) Get(ctx context.Context, email string) (Entry, error) {
	raw, err := r.store.Get(ctx, entryKey(email))
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry{}, fmt.Errorf("corrupt roster entry for %s: %w", email, err)
	}
	return e, nil
}

// Count returns the number of entries.
func (r *Roster) Count(ctx context.Context) (int, error) {
	keys, err := r.entryKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// List returns all entries ordered by registration time.
func (r *Roster) List(ctx context.Context) ([]Entry, error) {
	keys, err := r.entryKeys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		raw, err := r.store.Get(ctx, k)
		if errors.Is(err, domain.ErrKeyNotFound) {
			continue // removed concurrently
		}
		if err != nil {
			return nil, err
		}
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("corrupt roster entry %q: %w", k, err)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RegisteredAt.Before(entries[j].RegisteredAt)
	})
	return entries, nil
}

func (r *Roster) entryKeys(ctx context.Context) ([]string, error) {
	all, err := r.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, entryPrefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
