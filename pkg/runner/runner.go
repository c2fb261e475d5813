package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/waitlist"
	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/dispatch"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/form"
)

// ErrNotConfigured is returned by Run when the runner has no app or loop.
var ErrNotConfigured = errors.New("runner needs an app and a dispatch loop")

// Home screen commands. The first letter is accepted too.
const (
	commandRegister = "register"
	commandCancel   = "cancel"
	commandQuit     = "quit"
	commandBack     = "back"
)

// cancelQuestion is asked before an invitation is cancelled.
const cancelQuestion = "Are you sure? This cancels your invitation."

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldConfirm
	fieldSubmitted
)

func (f field) label() string {
	switch f {
	case fieldName:
		return "Full Name"
	case fieldEmail:
		return "Email"
	default:
		return "Confirm Email"
	}
}

// Runner drives a waitlist.App from line-based input.
//
// It is the app's logical thread: input lines and dispatched submission
// results are handled one at a time on the goroutine calling Run. Input is
// not read while a submission is pending.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on stdin/stdout.
	Handler IOHandler

	// Confirm approves cancelling an invitation. Defaults to asking through
	// Handler, or AutoApprove when Headless.
	Confirm Confirmer

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	Headless        bool
	InterruptSource <-chan struct{}

	app  *waitlist.App
	loop *dispatch.Loop

	home        domain.HomeView
	form        *form.Controller
	stopErrors  func()
	field       field
	needsPrompt bool
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.Confirm == nil {
		if r.Headless {
			r.Confirm = AutoApprove()
		} else {
			r.Confirm = ConfirmationPrompt(r.Handler)
		}
	}
	return r
}

// Run starts the app (unless already started) and processes input until the
// user quits, input ends, an interrupt arrives with nothing to cancel, or ctx
// is done. Quitting and end of input return nil.
func (r *Runner) Run(ctx context.Context) error {
	if r.app == nil || r.loop == nil {
		return ErrNotConfigured
	}
	if r.app.State() == nil {
		if err := r.app.Start(ctx); err != nil {
			return err
		}
	}
	defer r.app.Close()

	stopHome := r.app.ObserveHome(func(home domain.HomeView) {
		r.home = home
		r.needsPrompt = true
	})
	defer stopHome()
	defer r.detachForm()

	signals := NewSignalManager()
	defer signals.Stop()

	input := r.Handler.Input()
	r.needsPrompt = true

	for {
		r.syncForm(ctx)
		if r.needsPrompt {
			if err := r.prompt(ctx); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			r.needsPrompt = false
		}

		lines := input
		if r.form != nil && r.form.Pending() {
			lines = nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-signals.Context().Done():
			if !r.interrupt(ctx) {
				r.Logger.Debug("interrupted")
				return nil
			}
			signals.Reset()

		case <-r.InterruptSource:
			if !r.interrupt(ctx) {
				r.Logger.Debug("interrupted")
				return nil
			}

		case fn := <-r.loop.Tasks():
			fn()
			r.needsPrompt = true

		case res, ok := <-lines:
			if !ok {
				r.Logger.Debug("input closed")
				return nil
			}
			if res.Err != nil {
				signals.CheckRace()
				if signals.Context().Err() != nil {
					continue
				}
				return fmt.Errorf("input error: %w", res.Err)
			}

			quit, err := r.handleLine(ctx, res.Text)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			r.needsPrompt = true
		}
	}
}

// syncForm tracks the controller of the visible registration screen.
func (r *Runner) syncForm(ctx context.Context) {
	f := r.app.Form()
	if f != r.form {
		r.detachForm()
		r.form = f
		r.field = fieldName
		if f != nil {
			r.stopErrors = f.OnError(func(err error) {
				r.report(ctx, err.Error())
				r.field = fieldEmail
			})
		}
		return
	}
	if f != nil && r.field == fieldSubmitted && !f.Pending() {
		// The submission failed and its alert has been shown; start over.
		r.field = fieldName
	}
}

func (r *Runner) detachForm() {
	if r.stopErrors != nil {
		r.stopErrors()
		r.stopErrors = nil
	}
}

func (r *Runner) prompt(ctx context.Context) error {
	switch r.app.Top() {
	case domain.ScreenHome:
		if err := r.Handler.ShowHome(ctx, r.home); err != nil {
			return err
		}
		return r.Handler.Prompt(ctx, "")
	case domain.ScreenRegistration:
		if r.form != nil && r.form.Pending() {
			return r.Handler.SystemOutput(ctx, "Sending your registration...")
		}
		return r.Handler.Prompt(ctx, r.field.label())
	default:
		return r.Handler.Prompt(ctx, "Press enter to go back home")
	}
}

func (r *Runner) handleLine(ctx context.Context, line string) (quit bool, err error) {
	text, err := SanitizeInput(line)
	if err != nil {
		r.report(ctx, fmt.Sprintf("Error: %v. Please try again.", err))
		return false, nil
	}

	switch r.app.Top() {
	case domain.ScreenHome:
		return r.handleHome(ctx, text)
	case domain.ScreenRegistration:
		return false, r.handleRegistration(ctx, text)
	default:
		return false, r.app.Handle(ctx, domain.Event{Kind: domain.EventCongratulationsDismissed})
	}
}

func (r *Runner) handleHome(ctx context.Context, text string) (bool, error) {
	switch command(text) {
	case "":
		return false, nil
	case commandQuit:
		return true, nil
	case commandRegister:
		if !r.home.ShowRegister {
			r.report(ctx, "You have already requested an invitation.")
			return false, nil
		}
		return false, r.app.RequestRegistration(ctx)
	case commandCancel:
		if !r.home.ShowCancel {
			r.report(ctx, "There is no invitation to cancel.")
			return false, nil
		}
		ok, err := r.Confirm(ctx, cancelQuestion)
		if err != nil || !ok {
			return false, err
		}
		return false, r.app.CancelInvitation(ctx)
	default:
		r.report(ctx, fmt.Sprintf("Unknown command %q.", text))
		return false, nil
	}
}

func command(text string) string {
	text = strings.ToLower(text)
	for _, cmd := range []string{commandRegister, commandCancel, commandQuit, commandBack} {
		if text == cmd || (text != "" && text == cmd[:1]) {
			return cmd
		}
	}
	if text == "exit" {
		return commandQuit
	}
	return text
}

func (r *Runner) handleRegistration(ctx context.Context, text string) error {
	f := r.form
	if f == nil {
		return nil
	}
	if strings.EqualFold(text, commandBack) {
		// The text screen is gone as soon as the user leaves it.
		if err := r.Handler.DismissScreen(ctx, domain.ScreenRegistration); err != nil {
			return err
		}
		return r.app.Handle(ctx, domain.Event{Kind: domain.EventScreenDismissedByUser})
	}

	switch r.field {
	case fieldName:
		f.SetName(text)
		r.field = fieldEmail
		return nil
	case fieldEmail:
		f.SetEmail(text)
		r.field = fieldConfirm
		return nil
	case fieldConfirm:
		f.SetConfirmEmail(text)
	default:
		return nil
	}

	if !f.Enabled() {
		name, email, _ := f.Fields()
		if !form.IsValidName(name) {
			r.report(ctx, "Name is too short.")
			r.field = fieldName
		} else if !form.IsValidEmail(email) {
			r.report(ctx, "Invalid email.")
			r.field = fieldEmail
		}
		return nil
	}

	r.field = fieldSubmitted
	err := f.Submit(ctx)
	if errors.Is(err, domain.ErrSubmitInFlight) {
		return nil
	}
	return err
}

// interrupt cancels a pending submission. It reports false when there was
// nothing to cancel and the runner should stop.
func (r *Runner) interrupt(ctx context.Context) bool {
	if r.form == nil || !r.form.Pending() {
		return false
	}
	r.form.Cancel()
	r.field = fieldName
	r.needsPrompt = true
	r.report(ctx, "Registration cancelled.")
	return true
}

func (r *Runner) report(ctx context.Context, msg string) {
	if err := r.Handler.SystemOutput(ctx, msg); err != nil {
		r.Logger.Warn("failed to write system output", "error", err)
	}
}
