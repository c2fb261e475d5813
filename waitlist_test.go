package waitlist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/waitlist"
	"github.com/aretw0/waitlist/internal/adapters/file"
	"github.com/aretw0/waitlist/pkg/dispatch"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// recordingPresenter captures commands without printing.
type recordingPresenter struct {
	screens []string
	alerts  []domain.Alert
}

func (p *recordingPresenter) PresentScreen(_ context.Context, s domain.Screen) error {
	p.screens = append(p.screens, "+"+string(s))
	return nil
}

func (p *recordingPresenter) DismissScreen(_ context.Context, s domain.Screen) error {
	p.screens = append(p.screens, "-"+string(s))
	return nil
}

func (p *recordingPresenter) PresentAlert(_ context.Context, a domain.Alert) error {
	p.alerts = append(p.alerts, a)
	return nil
}

// blockingClient holds every submission until its context is cancelled.
type blockingClient struct {
	started chan struct{}
}

func (c *blockingClient) Submit(ctx context.Context, _ domain.Registration) (domain.Registration, error) {
	close(c.started)
	<-ctx.Done()
	return domain.Registration{}, ctx.Err()
}

type rejectingClient struct{ msg string }

func (c rejectingClient) Submit(context.Context, domain.Registration) (domain.Registration, error) {
	return domain.Registration{}, domain.ServerMessage(c.msg)
}

func newApp(t *testing.T, opts ...waitlist.Option) (*waitlist.App, *recordingPresenter, *dispatch.Loop) {
	t.Helper()
	p := &recordingPresenter{}
	loop := dispatch.NewLoop()
	t.Cleanup(loop.Close)

	base := []waitlist.Option{
		waitlist.WithClient(echoClient{}),
		waitlist.WithPresenter(p),
		waitlist.WithDispatcher(loop),
	}
	app, err := waitlist.New(append(base, opts...)...)
	require.NoError(t, err)
	require.NoError(t, app.Start(t.Context()))
	return app, p, loop
}

func fill(app *waitlist.App) {
	f := app.Form()
	f.SetName("User")
	f.SetEmail("user@email.com")
	f.SetConfirmEmail("user@email.com")
}

func next(t *testing.T, loop *dispatch.Loop) {
	t.Helper()
	select {
	case fn := <-loop.Tasks():
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatched result")
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := waitlist.New(waitlist.WithPresenter(&recordingPresenter{}))
	assert.Error(t, err)

	_, err = waitlist.New(waitlist.WithClient(echoClient{}))
	assert.Error(t, err)

	_, err = waitlist.New(waitlist.WithClient(echoClient{}), waitlist.WithPresenter(&recordingPresenter{}))
	assert.ErrorIs(t, err, waitlist.ErrDispatcherRequired)
}

func TestApp_ResultAppliedOnDispatcherOnly(t *testing.T) {
	ctx := t.Context()
	app, _, loop := newApp(t)
	require.NoError(t, app.RequestRegistration(ctx))
	fill(app)
	f := app.Form()
	require.NoError(t, f.Submit(ctx))

	var fn func()
	select {
	case fn = <-loop.Tasks():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatched result")
	}

	// The client has answered, but nothing changes until the owning thread runs the result.
	assert.True(t, f.Pending())
	assert.Equal(t, []domain.Screen{domain.ScreenHome, domain.ScreenRegistration}, app.Stack())
	assert.False(t, app.State().Current().Registered)

	fn()
	assert.False(t, f.Pending())
	assert.Equal(t, []domain.Screen{domain.ScreenHome, domain.ScreenCongratulations}, app.Stack())
	assert.True(t, app.State().Current().Registered)
}

func TestApp_NotStarted(t *testing.T) {
	loop := dispatch.NewLoop()
	defer loop.Close()
	app, err := waitlist.New(
		waitlist.WithClient(echoClient{}),
		waitlist.WithPresenter(&recordingPresenter{}),
		waitlist.WithDispatcher(loop),
	)
	require.NoError(t, err)

	assert.ErrorIs(t, app.RequestRegistration(t.Context()), waitlist.ErrNotStarted)
	assert.ErrorIs(t, app.CancelInvitation(t.Context()), waitlist.ErrNotStarted)
	assert.Nil(t, app.Stack())
}

func TestApp_RegistrationFlow(t *testing.T) {
	ctx := t.Context()
	app, p, loop := newApp(t)
	assert.Nil(t, app.Form())

	require.NoError(t, app.RequestRegistration(ctx))
	require.NotNil(t, app.Form())
	fill(app)
	require.NoError(t, app.Form().Submit(ctx))
	next(t, loop)

	assert.Nil(t, app.Form())
	assert.Equal(t, domain.ScreenCongratulations, app.Top())
	assert.True(t, app.State().Current().Registered)

	require.NoError(t, app.Handle(ctx, domain.Event{Kind: domain.EventCongratulationsDismissed}))
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, app.Stack())
	assert.Equal(t, []string{"+registration", "-registration", "+congratulations", "-congratulations"}, p.screens)
}

func TestApp_FailureKeepsForm(t *testing.T) {
	ctx := t.Context()
	app, p, loop := newApp(t, waitlist.WithClient(rejectingClient{msg: "slot full"}))

	require.NoError(t, app.RequestRegistration(ctx))
	fill(app)
	require.NoError(t, app.Form().Submit(ctx))
	next(t, loop)

	assert.Equal(t, domain.ScreenRegistration, app.Top())
	assert.NotNil(t, app.Form())
	assert.False(t, app.State().Current().Registered)
	require.Len(t, p.alerts, 1)
	assert.Equal(t, "We couldn't register you\nslot full", p.alerts[0].Message)
}

func TestApp_UserDismissCancelsSubmission(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := t.Context()
	client := &blockingClient{started: make(chan struct{})}
	app, p, loop := newApp(t, waitlist.WithClient(client))

	require.NoError(t, app.RequestRegistration(ctx))
	fill(app)
	f := app.Form()
	require.NoError(t, f.Submit(ctx))
	<-client.started

	require.NoError(t, app.Handle(ctx, domain.Event{Kind: domain.EventScreenDismissedByUser}))
	assert.False(t, f.Pending())
	assert.Nil(t, app.Form())

	// The cancelled result still arrives and is discarded.
	next(t, loop)
	assert.Empty(t, p.alerts)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, app.Stack())
}

func TestApp_CloseCancelsSubmission(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := t.Context()
	client := &blockingClient{started: make(chan struct{})}
	app, _, loop := newApp(t, waitlist.WithClient(client))

	require.NoError(t, app.RequestRegistration(ctx))
	fill(app)
	require.NoError(t, app.Form().Submit(ctx))
	<-client.started

	app.Close()
	next(t, loop)
	assert.False(t, app.State().Current().Registered)
}

func TestApp_CancelInvitation(t *testing.T) {
	ctx := t.Context()
	store := file.New(t.TempDir())
	require.NoError(t, store.Set(ctx, domain.RegistrationEmailKey, "user@email.com"))

	app, p, _ := newApp(t, waitlist.WithStore(store))

	var homes []domain.HomeView
	app.ObserveHome(func(h domain.HomeView) { homes = append(homes, h) })

	require.NoError(t, app.CancelInvitation(ctx))

	require.Len(t, homes, 2)
	assert.True(t, homes[0].ShowCancel)
	assert.True(t, homes[1].ShowRegister)
	require.Len(t, p.alerts, 1)
	assert.Equal(t, domain.CancelledAlertTitle, p.alerts[0].Title)

	_, err := store.Get(ctx, domain.RegistrationEmailKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	assert.ErrorIs(t, app.CancelInvitation(ctx), domain.ErrNotRegistered)
}

func TestApp_CancelInvitationOffHome(t *testing.T) {
	ctx := t.Context()
	app, _, _ := newApp(t)
	require.NoError(t, app.RequestRegistration(ctx))

	err := app.CancelInvitation(ctx)
	assert.True(t, errors.Is(err, domain.ErrUnexpectedEvent))
}

func TestApp_PersistsAcrossRestarts(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()

	app, _, loop := newApp(t, waitlist.WithStore(file.New(dir)), waitlist.WithStoreKey("email"))
	require.NoError(t, app.RequestRegistration(ctx))
	fill(app)
	require.NoError(t, app.Form().Submit(ctx))
	next(t, loop)

	restarted, _, _ := newApp(t, waitlist.WithStore(file.New(dir)), waitlist.WithStoreKey("email"))
	assert.Equal(t, "user@email.com", restarted.State().Current().Email)
}
