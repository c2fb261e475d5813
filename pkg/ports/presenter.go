package ports

import (
	"context"

	"github.com/aretw0/waitlist/pkg/domain"
)

// Presenter is the presentation boundary the navigation coordinator drives.
type Presenter interface {
	// PresentScreen shows a screen on top of the current one.
	PresentScreen(ctx context.Context, screen domain.Screen) error

	// DismissScreen removes the given (top) screen.
	DismissScreen(ctx context.Context, screen domain.Screen) error

	// PresentAlert shows a dismissible notice over the current screen.
	PresentAlert(ctx context.Context, alert domain.Alert) error
}

// EventHandler routes navigation events.
type EventHandler interface {
	Handle(ctx context.Context, ev domain.Event) error
}
