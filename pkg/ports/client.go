package ports

import (
	"context"

	"github.com/aretw0/waitlist/pkg/domain"
)

// RegistrationClient submits a registration to the remote service.
// Failures are returned as *domain.RegistrationError, except for caller cancellation
// which returns ctx.Err().
type RegistrationClient interface {
	Submit(ctx context.Context, r domain.Registration) (domain.Registration, error)
}
