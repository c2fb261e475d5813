package runner

import (
	"log/slog"

	"github.com/aretw0/waitlist"
	"github.com/aretw0/waitlist/pkg/dispatch"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithApp sets the flow the runner drives. Its presenter should be the
// runner's IOHandler and its dispatcher the runner's loop.
func WithApp(app *waitlist.App) Option {
	return func(r *Runner) {
		r.app = app
	}
}

// WithLoop sets the loop submission results are dispatched to.
func WithLoop(loop *dispatch.Loop) Option {
	return func(r *Runner) {
		r.loop = loop
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless sets the runner to headless mode: destructive actions are
// approved without asking unless a Confirmer is set.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithConfirmer configures how destructive actions are approved.
func WithConfirmer(confirm Confirmer) Option {
	return func(r *Runner) {
		r.Confirm = confirm
	}
}

// WithInterruptSource sets a channel that interrupts the runner like SIGINT does.
func WithInterruptSource(ch <-chan struct{}) Option {
	return func(r *Runner) {
		r.InterruptSource = ch
	}
}
