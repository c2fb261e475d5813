// Package form implements the registration form controller.
//
// The controller owns the three text fields, derives whether submitting is
// allowed, and orchestrates one submission at a time: client call, state
// update and navigation event, all applied on the injected dispatcher.
package form

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/ports"
	"github.com/aretw0/waitlist/pkg/pubsub"
	"github.com/google/uuid"
)

// Registrar persists a successful registration.
type Registrar interface {
	Register(ctx context.Context, r domain.Registration) error
}

// Controller is the registration form state machine.
// All methods except the background submission must be called from the
// logical thread the dispatcher delivers on.
type Controller struct {
	client     ports.RegistrationClient
	registrar  Registrar
	navigator  ports.EventHandler
	dispatcher ports.Dispatcher
	logger     *slog.Logger
	hooks      domain.FlowHooks
	now        func() time.Time

	name, email, confirm string

	enabled *pubsub.Relay[bool]
	errs    *pubsub.Subject[error]

	seq     uint64
	pending bool
	cancel  context.CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithFlowHooks registers submission observers.
func WithFlowHooks(hooks domain.FlowHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// New creates a Controller with empty fields and a disabled submit.
// Submission results are applied through dispatcher, which must deliver them on
// the thread that calls the Controller's methods.
func New(client ports.RegistrationClient, registrar Registrar, navigator ports.EventHandler, dispatcher ports.Dispatcher, opts ...Option) *Controller {
	c := &Controller{
		client:     client,
		registrar:  registrar,
		navigator:  navigator,
		dispatcher: dispatcher,
		logger:     logging.NewNop(),
		now:        time.Now,
		enabled:    pubsub.NewRelay(false),
		errs:       pubsub.NewSubject[error](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetName updates the name field.
func (c *Controller) SetName(v string) {
	c.name = v
	c.recompute()
}

// SetEmail updates the email field.
func (c *Controller) SetEmail(v string) {
	c.email = v
	c.recompute()
}

// SetConfirmEmail updates the confirmation field.
func (c *Controller) SetConfirmEmail(v string) {
	c.confirm = v
	c.recompute()
}

// Fields returns the current field values.
func (c *Controller) Fields() (name, email, confirm string) {
	return c.name, c.email, c.confirm
}

func (c *Controller) recompute() {
	next := Valid(c.name, c.email, c.confirm)
	if next != c.enabled.Value() {
		c.enabled.Publish(next)
	}
}

// Enabled reports whether submitting is currently allowed.
func (c *Controller) Enabled() bool {
	return c.enabled.Value()
}

// OnEnabled delivers the current enabled flag, then every change.
func (c *Controller) OnEnabled(fn func(bool)) (cancel func()) {
	return c.enabled.Subscribe(fn)
}

// OnError delivers validation errors raised by Submit. There is no replay.
func (c *Controller) OnError(fn func(error)) (cancel func()) {
	return c.errs.Subscribe(fn)
}

// Pending reports whether a submission is in flight.
func (c *Controller) Pending() bool {
	return c.pending
}

// Submit validates the confirmation and starts a submission.
//
// A mismatched confirmation publishes domain.ErrEmailMismatch on the error
// stream and returns nil. A submit while another is in flight returns
// domain.ErrSubmitInFlight and does nothing else.
func (c *Controller) Submit(ctx context.Context) error {
	if c.pending {
		c.logger.Debug("submit ignored, registration in flight")
		return domain.ErrSubmitInFlight
	}

	if c.email != c.confirm {
		c.logger.Debug("submit rejected, confirmation mismatch")
		c.errs.Publish(domain.ErrEmailMismatch)
		return nil
	}

	reg := domain.Registration{Name: c.name, Email: c.email}
	requestID := uuid.NewString()

	// The submission outlives the caller's request scope; Cancel aborts it.
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	subCtx = domain.ContextWithRequestID(subCtx, requestID)

	c.seq++
	id := c.seq
	c.pending = true
	c.cancel = cancel

	started := c.now()
	if c.hooks.OnSubmit != nil {
		c.hooks.OnSubmit(subCtx, &domain.SubmitEvent{
			Timestamp:    started,
			RequestID:    requestID,
			Registration: reg,
		})
	}
	c.logger.Info("registration submitted", "request_id", requestID, "email", reg.Email)

	go func() {
		result, err := c.client.Submit(subCtx, reg)
		c.dispatcher.Dispatch(func() {
			c.finish(subCtx, id, requestID, started, result, err)
		})
	}()
	return nil
}

// finish applies a submission result on the owning thread.
func (c *Controller) finish(ctx context.Context, id uint64, requestID string, started time.Time, result domain.Registration, err error) {
	if id != c.seq || !c.pending || ctx.Err() != nil {
		c.logger.Debug("discarding stale registration result", "request_id", requestID)
		return
	}
	c.pending = false
	c.cancel()
	c.cancel = nil
	ctx = context.WithoutCancel(ctx)

	if c.hooks.OnResult != nil {
		c.hooks.OnResult(ctx, &domain.SubmitEvent{
			Timestamp:    c.now(),
			RequestID:    requestID,
			Registration: result,
			Duration:     c.now().Sub(started),
			Err:          err,
		})
	}

	if err != nil {
		c.logger.Warn("registration failed", "request_id", requestID, "error", err)
		c.fail(ctx, domain.UserMessage(err))
		return
	}

	if err := c.registrar.Register(ctx, result); err != nil {
		c.logger.Error("registration accepted but not saved", "request_id", requestID, "error", err)
		c.fail(ctx, domain.GenericFailureMessage)
		return
	}

	if err := c.navigator.Handle(ctx, domain.Event{Kind: domain.EventRegistrationCompleted}); err != nil {
		c.logger.Warn("navigation rejected completion", "error", err)
	}
}

func (c *Controller) fail(ctx context.Context, message string) {
	err := c.navigator.Handle(ctx, domain.Event{Kind: domain.EventRegistrationFailed, Message: message})
	if err != nil && !errors.Is(err, domain.ErrUnexpectedEvent) {
		c.logger.Warn("failed to present registration failure", "error", err)
	}
}

// Cancel aborts the in-flight submission. A result already in transit is discarded.
func (c *Controller) Cancel() {
	if !c.pending {
		return
	}
	c.logger.Debug("registration cancelled")
	c.pending = false
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
