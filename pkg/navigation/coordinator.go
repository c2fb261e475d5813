// Package navigation implements the coordinator that owns the screen stack.
//
// The stack always starts with the home screen, which is never popped. Events
// are validated against the current top; an event that does not apply leaves
// the stack untouched and returns domain.ErrUnexpectedEvent.
package navigation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/ports"
)

// Coordinator maps navigation events to presenter commands.
// Not safe for concurrent use; drive it from the owning logical thread.
type Coordinator struct {
	presenter ports.Presenter
	stack     []domain.Screen
	logger    *slog.Logger
	onPush    func(domain.Screen)
	onPop     func(domain.Screen)
}

var _ ports.EventHandler = (*Coordinator)(nil)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger configures a logger for the Coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithOnPush registers a callback fired after a screen is pushed.
func WithOnPush(fn func(domain.Screen)) Option {
	return func(c *Coordinator) {
		c.onPush = fn
	}
}

// WithOnPop registers a callback fired after a screen is popped.
func WithOnPop(fn func(domain.Screen)) Option {
	return func(c *Coordinator) {
		c.onPop = fn
	}
}

// New creates a Coordinator showing the home screen.
func New(presenter ports.Presenter, opts ...Option) *Coordinator {
	c := &Coordinator{
		presenter: presenter,
		stack:     []domain.Screen{domain.ScreenHome},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Top returns the screen currently shown.
func (c *Coordinator) Top() domain.Screen {
	return c.stack[len(c.stack)-1]
}

// Stack returns a copy of the screen stack, bottom first.
func (c *Coordinator) Stack() []domain.Screen {
	return append([]domain.Screen(nil), c.stack...)
}

// Handle applies ev. Presenter failures are returned and leave the stack as it was
// before the failing command.
func (c *Coordinator) Handle(ctx context.Context, ev domain.Event) error {
	c.logger.Debug("navigation event", "event", ev.Kind, "top", c.Top())

	switch ev.Kind {
	case domain.EventRegisterRequested:
		if err := c.expect(ev, domain.ScreenHome); err != nil {
			return err
		}
		return c.push(ctx, domain.ScreenRegistration)

	case domain.EventRegistrationCompleted:
		if err := c.expect(ev, domain.ScreenRegistration); err != nil {
			return err
		}
		if err := c.dismiss(ctx, domain.ScreenRegistration); err != nil {
			return err
		}
		return c.push(ctx, domain.ScreenCongratulations)

	case domain.EventRegistrationFailed:
		return c.alert(ctx, domain.Alert{
			Title:   domain.FailureAlertTitle,
			Message: domain.FailureAlertPrefix + "\n" + ev.Message,
		})

	case domain.EventCongratulationsDismissed:
		if err := c.expect(ev, domain.ScreenCongratulations); err != nil {
			return err
		}
		return c.dismiss(ctx, domain.ScreenCongratulations)

	case domain.EventScreenDismissedByUser:
		if c.Top() == domain.ScreenHome {
			return c.unexpected(ev)
		}
		// The presentation layer already removed it.
		c.pop()
		return nil

	case domain.EventInvitationCancelled:
		if err := c.expect(ev, domain.ScreenHome); err != nil {
			return err
		}
		return c.alert(ctx, domain.Alert{
			Title:   domain.CancelledAlertTitle,
			Message: domain.CancelledAlertBody,
		})
	}

	return fmt.Errorf("%w: unknown kind %q", domain.ErrUnexpectedEvent, ev.Kind)
}

func (c *Coordinator) expect(ev domain.Event, top domain.Screen) error {
	if c.Top() != top {
		return c.unexpected(ev)
	}
	return nil
}

func (c *Coordinator) unexpected(ev domain.Event) error {
	c.logger.Warn("navigation event ignored", "event", ev.Kind, "top", c.Top())
	return fmt.Errorf("%w: %s on %s", domain.ErrUnexpectedEvent, ev.Kind, c.Top())
}

func (c *Coordinator) push(ctx context.Context, screen domain.Screen) error {
	if err := c.presenter.PresentScreen(ctx, screen); err != nil {
		return fmt.Errorf("failed to present %s: %w", screen, err)
	}
	c.stack = append(c.stack, screen)
	c.logger.Info("screen presented", "screen", screen)
	if c.onPush != nil {
		c.onPush(screen)
	}
	return nil
}

func (c *Coordinator) dismiss(ctx context.Context, screen domain.Screen) error {
	if err := c.presenter.DismissScreen(ctx, screen); err != nil {
		return fmt.Errorf("failed to dismiss %s: %w", screen, err)
	}
	c.pop()
	return nil
}

func (c *Coordinator) pop() {
	top := c.Top()
	c.stack = c.stack[:len(c.stack)-1]
	c.logger.Info("screen dismissed", "screen", top)
	if c.onPop != nil {
		c.onPop(top)
	}
}

func (c *Coordinator) alert(ctx context.Context, a domain.Alert) error {
	if err := c.presenter.PresentAlert(ctx, a); err != nil {
		return fmt.Errorf("failed to present alert: %w", err)
	}
	return nil
}

// Transition is one edge of the screen graph.
type Transition struct {
	From  domain.Screen
	Event domain.EventKind
	To    domain.Screen
	// Alert marks an event that presents an alert and keeps the screen.
	Alert bool
	// External marks a change the presentation layer already performed.
	External bool
}

// Transitions describes every move Handle can make, in flow order.
func Transitions() []Transition {
	return []Transition{
		{From: domain.ScreenHome, Event: domain.EventRegisterRequested, To: domain.ScreenRegistration},
		{From: domain.ScreenHome, Event: domain.EventInvitationCancelled, To: domain.ScreenHome, Alert: true},
		{From: domain.ScreenRegistration, Event: domain.EventRegistrationCompleted, To: domain.ScreenCongratulations},
		{From: domain.ScreenRegistration, Event: domain.EventRegistrationFailed, To: domain.ScreenRegistration, Alert: true},
		{From: domain.ScreenRegistration, Event: domain.EventScreenDismissedByUser, To: domain.ScreenHome, External: true},
		{From: domain.ScreenCongratulations, Event: domain.EventCongratulationsDismissed, To: domain.ScreenHome},
		{From: domain.ScreenCongratulations, Event: domain.EventScreenDismissedByUser, To: domain.ScreenHome, External: true},
	}
}
