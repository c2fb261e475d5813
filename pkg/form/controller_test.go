package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/waitlist/pkg/adapters/memory"
	"github.com/aretw0/waitlist/pkg/dispatch"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/form"
	"github.com/aretw0/waitlist/pkg/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeClient returns a canned result. When block is set it waits for cancellation.
type fakeClient struct {
	mu     sync.Mutex
	calls  []domain.Registration
	ids    []string
	err    error
	block  bool
	called chan struct{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{called: make(chan struct{}, 8)}
}

func (f *fakeClient) Submit(ctx context.Context, r domain.Registration) (domain.Registration, error) {
	f.mu.Lock()
	f.calls = append(f.calls, r)
	id, _ := domain.RequestIDFromContext(ctx)
	f.ids = append(f.ids, id)
	block, err := f.block, f.err
	f.mu.Unlock()
	f.called <- struct{}{}

	if block {
		<-ctx.Done()
		return domain.Registration{}, ctx.Err()
	}
	if err != nil {
		return domain.Registration{}, err
	}
	return r, nil
}

func (f *fakeClient) Calls() []domain.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Registration(nil), f.calls...)
}

// recordingNavigator captures navigation events.
type recordingNavigator struct {
	events []domain.Event
}

func (n *recordingNavigator) Handle(ctx context.Context, ev domain.Event) error {
	n.events = append(n.events, ev)
	return nil
}

type failingRegistrar struct{}

func (failingRegistrar) Register(context.Context, domain.Registration) error {
	return errors.New("disk full")
}

type harness struct {
	client *fakeClient
	nav    *recordingNavigator
	state  *registration.State
	loop   *dispatch.Loop
	form   *form.Controller
}

func newHarness(t *testing.T, opts ...form.Option) *harness {
	t.Helper()
	state, err := registration.NewState(t.Context(), registration.NewStore(memory.NewStore()))
	require.NoError(t, err)

	h := &harness{
		client: newFakeClient(),
		nav:    &recordingNavigator{},
		state:  state,
		loop:   dispatch.NewLoop(),
	}
	t.Cleanup(h.loop.Close)
	h.form = form.New(h.client, state, h.nav, h.loop, opts...)
	return h
}

func (h *harness) fill(name, email, confirm string) {
	h.form.SetName(name)
	h.form.SetEmail(email)
	h.form.SetConfirmEmail(confirm)
}

// runNext executes the next dispatched result.
func (h *harness) runNext(t *testing.T) {
	t.Helper()
	select {
	case fn := <-h.loop.Tasks():
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for submission result")
	}
}

func TestController_ShortNameDisables(t *testing.T) {
	h := newHarness(t)
	h.fill("Jo", "user@email.com", "user@email.com")
	assert.False(t, h.form.Enabled())

	h.form.SetName("Joe")
	assert.True(t, h.form.Enabled())
}

func TestController_InvalidEmailDisables(t *testing.T) {
	for _, email := range []string{"useremail.com", "user@email"} {
		t.Run(email, func(t *testing.T) {
			h := newHarness(t)
			h.fill("User", email, email)
			assert.False(t, h.form.Enabled())
		})
	}
}

func TestController_EnabledIsDistinct(t *testing.T) {
	h := newHarness(t)

	var seen []bool
	h.form.OnEnabled(func(v bool) { seen = append(seen, v) })

	h.form.SetName("U")
	h.form.SetName("Us")
	h.form.SetName("User")
	h.form.SetEmail("user@email.com")
	h.form.SetConfirmEmail("u")
	h.form.SetConfirmEmail("us")
	h.form.SetConfirmEmail("user@email.com")
	h.form.SetName("Username")

	assert.Equal(t, []bool{false, true}, seen)

	// A late subscriber gets the current value.
	var late []bool
	h.form.OnEnabled(func(v bool) { late = append(late, v) })
	assert.Equal(t, []bool{true}, late)
}

func TestController_SubmitSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	h.fill("User", "user@email.com", "user@email.com")

	require.NoError(t, h.form.Submit(t.Context()))
	assert.True(t, h.form.Pending())
	h.runNext(t)

	assert.False(t, h.form.Pending())
	assert.Equal(t, []domain.Registration{{Name: "User", Email: "user@email.com"}}, h.client.Calls())
	assert.Equal(t, registration.Status{Email: "user@email.com", Registered: true}, h.state.Current())
	assert.Equal(t, []domain.Event{{Kind: domain.EventRegistrationCompleted}}, h.nav.events)
	require.Len(t, h.client.ids, 1)
	assert.NotEmpty(t, h.client.ids[0])
}

func TestController_EmailMismatch(t *testing.T) {
	h := newHarness(t)
	h.fill("User", "user@email.com", "other@email.com")

	var errs []error
	h.form.OnError(func(err error) { errs = append(errs, err) })

	require.NoError(t, h.form.Submit(t.Context()))

	assert.False(t, h.form.Pending())
	assert.Empty(t, h.client.Calls())
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrEmailMismatch)
	assert.False(t, h.state.Current().Registered)
	assert.Empty(t, h.nav.events)
}

func TestController_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", domain.ServerMessage("slot full"), "slot full"},
		{"network failure", domain.NetworkFailure(errors.New("connection refused")), domain.GenericFailureMessage},
		{"internal failure", domain.InternalFailure(errors.New("bad url")), domain.GenericFailureMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.client.err = tt.err
			h.fill("User", "user@email.com", "user@email.com")

			require.NoError(t, h.form.Submit(t.Context()))
			h.runNext(t)

			assert.Equal(t, []domain.Event{{Kind: domain.EventRegistrationFailed, Message: tt.want}}, h.nav.events)
			assert.False(t, h.state.Current().Registered)
			assert.False(t, h.form.Pending())
		})
	}
}

func TestController_PersistenceFailure(t *testing.T) {
	client := newFakeClient()
	nav := &recordingNavigator{}
	loop := dispatch.NewLoop()
	defer loop.Close()

	c := form.New(client, failingRegistrar{}, nav, loop)
	c.SetName("User")
	c.SetEmail("user@email.com")
	c.SetConfirmEmail("user@email.com")

	require.NoError(t, c.Submit(t.Context()))
	fn := <-loop.Tasks()
	fn()

	assert.Equal(t, []domain.Event{{Kind: domain.EventRegistrationFailed, Message: "Please try again."}}, nav.events)
}

func TestController_SubmitInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	h.client.block = true
	h.fill("User", "user@email.com", "user@email.com")

	require.NoError(t, h.form.Submit(t.Context()))
	<-h.client.called

	err := h.form.Submit(t.Context())
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.Len(t, h.client.Calls(), 1)

	h.form.Cancel()
	h.runNext(t)
}

func TestController_CancelDiscardsResult(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	h.client.block = true
	h.fill("User", "user@email.com", "user@email.com")

	require.NoError(t, h.form.Submit(t.Context()))
	<-h.client.called

	h.form.Cancel()
	assert.False(t, h.form.Pending())
	h.runNext(t)

	assert.Empty(t, h.nav.events)
	assert.False(t, h.state.Current().Registered)
}

func TestController_StaleResultAfterResubmit(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	h.client.block = true
	h.fill("User", "user@email.com", "user@email.com")

	require.NoError(t, h.form.Submit(t.Context()))
	<-h.client.called
	h.form.Cancel()

	h.client.mu.Lock()
	h.client.block = false
	h.client.mu.Unlock()
	require.NoError(t, h.form.Submit(t.Context()))

	// Both results arrive; only the second one is applied.
	h.runNext(t)
	h.runNext(t)

	assert.Equal(t, []domain.Event{{Kind: domain.EventRegistrationCompleted}}, h.nav.events)
	assert.True(t, h.state.Current().Registered)
}

func TestController_CallerContextDoesNotCancelSubmission(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	h.fill("User", "user@email.com", "user@email.com")

	ctx, cancel := context.WithCancel(t.Context())
	require.NoError(t, h.form.Submit(ctx))
	cancel()
	h.runNext(t)

	assert.Equal(t, []domain.Event{{Kind: domain.EventRegistrationCompleted}}, h.nav.events)
}

func TestController_FlowHooks(t *testing.T) {
	var submitted, results []*domain.SubmitEvent
	h := newHarness(t, form.WithFlowHooks(domain.FlowHooks{
		OnSubmit: func(_ context.Context, ev *domain.SubmitEvent) { submitted = append(submitted, ev) },
		OnResult: func(_ context.Context, ev *domain.SubmitEvent) { results = append(results, ev) },
	}))
	h.client.err = domain.ServerMessage("slot full")
	h.fill("User", "user@email.com", "user@email.com")

	require.NoError(t, h.form.Submit(t.Context()))
	require.Len(t, submitted, 1)
	assert.Equal(t, "user@email.com", submitted[0].Registration.Email)

	h.runNext(t)
	require.Len(t, results, 1)
	assert.Equal(t, submitted[0].RequestID, results[0].RequestID)
	assert.Error(t, results[0].Err)
}
