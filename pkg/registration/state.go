package registration

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/pubsub"
)

// Status is the optional registered email.
type Status struct {
	Email      string
	Registered bool
}

// Home derives the home screen content from the status.
func (s Status) Home() domain.HomeView {
	return domain.NewHomeView(s.Email, s.Registered)
}

// State is the observable registration status.
// Mutations are expected from a single logical thread.
type State struct {
	store  *Store
	relay  *pubsub.Relay[Status]
	logger *slog.Logger
	mu     sync.Mutex // serializes store write + publish
}

// StateOption configures a State.
type StateOption func(*State)

// WithLogger configures a logger for the State.
func WithLogger(logger *slog.Logger) StateOption {
	return func(s *State) {
		s.logger = logger
	}
}

// NewState loads the current status from store.
func NewState(ctx context.Context, store *Store, opts ...StateOption) (*State, error) {
	s := &State{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	email, ok, err := store.Email(ctx)
	if err != nil {
		return nil, err
	}
	s.relay = pubsub.NewRelay(Status{Email: email, Registered: ok})
	s.logger.Debug("registration state loaded", "registered", ok, "email", email)
	return s, nil
}

// Current returns a snapshot of the status.
func (s *State) Current() Status {
	return s.relay.Value()
}

// Observe delivers the current status to fn immediately, then every change.
func (s *State) Observe(fn func(Status)) (cancel func()) {
	return s.relay.Subscribe(fn)
}

// Register persists r.Email and notifies observers.
// On a store failure the status is left untouched.
func (s *State) Register(ctx context.Context, r domain.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetEmail(ctx, r.Email); err != nil {
		return err
	}
	s.logger.Info("registration saved", "email", r.Email)
	s.relay.Publish(Status{Email: r.Email, Registered: true})
	return nil
}

// Deregister clears the stored email and notifies observers.
func (s *State) Deregister(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("registration cleared")
	s.relay.Publish(Status{})
	return nil
}
