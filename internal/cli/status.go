package cli

import (
	"context"

	"github.com/aretw0/waitlist/internal/config"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/registration"
)

func openState(ctx context.Context, cfg config.Config) (*registration.State, *Backend, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := registration.NewStore(backend.Store, registration.WithKey(cfg.Store.Key))
	state, err := registration.NewState(ctx, store)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	return state, backend, nil
}

// Status reports the persisted registration.
func Status(ctx context.Context, cfg config.Config) (registration.Status, error) {
	state, backend, err := openState(ctx, cfg)
	if err != nil {
		return registration.Status{}, err
	}
	defer backend.Close()
	return state.Current(), nil
}

// CancelInvitation forgets the persisted registration.
// It returns domain.ErrNotRegistered when there is nothing to cancel.
func CancelInvitation(ctx context.Context, cfg config.Config) (email string, err error) {
	state, backend, err := openState(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer backend.Close()

	current := state.Current()
	if !current.Registered {
		return "", domain.ErrNotRegistered
	}
	if err := state.Deregister(ctx); err != nil {
		return "", err
	}
	return current.Email, nil
}
