package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/adapters/memory"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/form"
	"github.com/aretw0/waitlist/pkg/navigation"
	"github.com/aretw0/waitlist/pkg/ports"
	"github.com/aretw0/waitlist/pkg/registration"
)

var (
	// ErrNotStarted is returned by App methods called before Start.
	ErrNotStarted = errors.New("waitlist app not started")
	// ErrDispatcherRequired is returned by New when no logical thread is configured.
	ErrDispatcherRequired = errors.New("a dispatcher is required")
)

// App is the composition root of the registration flow.
// It owns exactly one registration state and coordinator, and a fresh form
// controller for every time the registration screen is shown.
//
// Not safe for concurrent use: call it from the dispatcher's logical thread.
type App struct {
	store      ports.KeyValueStore
	storeKey   string
	client     ports.RegistrationClient
	presenter  ports.Presenter
	dispatcher ports.Dispatcher
	hooks      domain.FlowHooks
	logger     *slog.Logger

	state *registration.State
	nav   *navigation.Coordinator
	form  *form.Controller
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithStore sets the key-value store the registration is persisted in.
// Defaults to an in-memory store.
func WithStore(store ports.KeyValueStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithStoreKey overrides the key the registered email is stored under.
func WithStoreKey(key string) Option {
	return func(a *App) {
		a.storeKey = key
	}
}

// WithClient sets the registration client. Required.
func WithClient(client ports.RegistrationClient) Option {
	return func(a *App) {
		a.client = client
	}
}

// WithPresenter sets the presentation boundary. Required.
func WithPresenter(p ports.Presenter) Option {
	return func(a *App) {
		a.presenter = p
	}
}

// WithDispatcher sets the logical thread submission results are delivered on. Required.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(a *App) {
		a.dispatcher = d
	}
}

// WithFlowHooks registers submission observers.
func WithFlowHooks(hooks domain.FlowHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New configures an App. Call Start before using it.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.client == nil {
		return nil, fmt.Errorf("a registration client is required")
	}
	if a.presenter == nil {
		return nil, fmt.Errorf("a presenter is required")
	}
	if a.dispatcher == nil {
		return nil, ErrDispatcherRequired
	}
	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	return a, nil
}

// Start loads the persisted registration and shows the home screen.
func (a *App) Start(ctx context.Context) error {
	store := registration.NewStore(a.store, registration.WithKey(a.storeKey))
	state, err := registration.NewState(ctx, store, registration.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("failed to load registration: %w", err)
	}
	a.state = state
	a.nav = navigation.New(a.presenter,
		navigation.WithLogger(a.logger),
		navigation.WithOnPush(a.screenPushed),
		navigation.WithOnPop(a.screenPopped),
	)
	a.logger.Info("waitlist started", "registered", state.Current().Registered)
	return nil
}

func (a *App) screenPushed(screen domain.Screen) {
	if screen != domain.ScreenRegistration {
		return
	}
	a.form = form.New(a.client, a.state, a.nav, a.dispatcher,
		form.WithLogger(a.logger),
		form.WithFlowHooks(a.hooks),
	)
}

func (a *App) screenPopped(screen domain.Screen) {
	if screen != domain.ScreenRegistration || a.form == nil {
		return
	}
	a.form.Cancel()
	a.form = nil
}

// Handle routes a navigation event, typically one raised by the presentation layer.
func (a *App) Handle(ctx context.Context, ev domain.Event) error {
	if a.nav == nil {
		return ErrNotStarted
	}
	return a.nav.Handle(ctx, ev)
}

// RequestRegistration opens the registration screen.
func (a *App) RequestRegistration(ctx context.Context) error {
	return a.Handle(ctx, domain.Event{Kind: domain.EventRegisterRequested})
}

// CancelInvitation forgets the stored registration and confirms it to the user.
func (a *App) CancelInvitation(ctx context.Context) error {
	if a.nav == nil {
		return ErrNotStarted
	}
	if top := a.nav.Top(); top != domain.ScreenHome {
		return fmt.Errorf("%w: cancel invitation on %s", domain.ErrUnexpectedEvent, top)
	}
	if !a.state.Current().Registered {
		return domain.ErrNotRegistered
	}
	if err := a.state.Deregister(ctx); err != nil {
		return err
	}
	return a.nav.Handle(ctx, domain.Event{Kind: domain.EventInvitationCancelled})
}

// Form returns the controller of the visible registration screen, or nil.
func (a *App) Form() *form.Controller {
	return a.form
}

// State returns the registration state, nil before Start.
func (a *App) State() *registration.State {
	return a.state
}

// Stack returns the current screen stack, bottom first.
func (a *App) Stack() []domain.Screen {
	if a.nav == nil {
		return nil
	}
	return a.nav.Stack()
}

// Top returns the visible screen.
func (a *App) Top() domain.Screen {
	if a.nav == nil {
		return domain.ScreenHome
	}
	return a.nav.Top()
}

// ObserveHome delivers the home screen content now and on every registration change.
func (a *App) ObserveHome(fn func(domain.HomeView)) (cancel func()) {
	if a.state == nil {
		return func() {}
	}
	return a.state.Observe(func(s registration.Status) {
		fn(s.Home())
	})
}

// Close aborts any pending submission.
func (a *App) Close() {
	if a.form != nil {
		a.form.Cancel()
	}
}
