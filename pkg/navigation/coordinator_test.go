package navigation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPresenter logs every command; failNext makes the next command fail.
type recordingPresenter struct {
	commands []string
	alerts   []domain.Alert
	failNext bool
}

func (p *recordingPresenter) result(cmd string) error {
	if p.failNext {
		p.failNext = false
		return errors.New("presenter unavailable")
	}
	p.commands = append(p.commands, cmd)
	return nil
}

func (p *recordingPresenter) PresentScreen(_ context.Context, s domain.Screen) error {
	return p.result("present:" + string(s))
}

func (p *recordingPresenter) DismissScreen(_ context.Context, s domain.Screen) error {
	return p.result("dismiss:" + string(s))
}

func (p *recordingPresenter) PresentAlert(_ context.Context, a domain.Alert) error {
	if err := p.result("alert"); err != nil {
		return err
	}
	p.alerts = append(p.alerts, a)
	return nil
}

func ev(kind domain.EventKind) domain.Event {
	return domain.Event{Kind: kind}
}

func TestCoordinator_HappyPath(t *testing.T) {
	ctx := t.Context()
	p := &recordingPresenter{}
	c := navigation.New(p)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, c.Stack())

	require.NoError(t, c.Handle(ctx, ev(domain.EventRegisterRequested)))
	assert.Equal(t, domain.ScreenRegistration, c.Top())

	require.NoError(t, c.Handle(ctx, ev(domain.EventRegistrationCompleted)))
	assert.Equal(t, []domain.Screen{domain.ScreenHome, domain.ScreenCongratulations}, c.Stack())

	require.NoError(t, c.Handle(ctx, ev(domain.EventCongratulationsDismissed)))
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, c.Stack())

	assert.Equal(t, []string{
		"present:registration",
		"dismiss:registration",
		"present:congratulations",
		"dismiss:congratulations",
	}, p.commands)
}

func TestCoordinator_FailureAlertKeepsStack(t *testing.T) {
	ctx := t.Context()
	p := &recordingPresenter{}
	c := navigation.New(p)
	require.NoError(t, c.Handle(ctx, ev(domain.EventRegisterRequested)))

	require.NoError(t, c.Handle(ctx, domain.Event{Kind: domain.EventRegistrationFailed, Message: "slot full"}))

	assert.Equal(t, domain.ScreenRegistration, c.Top())
	require.Len(t, p.alerts, 1)
	assert.Equal(t, domain.Alert{Title: "Oops", Message: "We couldn't register you\nslot full"}, p.alerts[0])
}

func TestCoordinator_UnexpectedEvents(t *testing.T) {
	tests := []struct {
		name  string
		setup []domain.EventKind
		event domain.EventKind
	}{
		{"completed on home", nil, domain.EventRegistrationCompleted},
		{"congratulations dismissed on home", nil, domain.EventCongratulationsDismissed},
		{"register twice", []domain.EventKind{domain.EventRegisterRequested}, domain.EventRegisterRequested},
		{"user dismiss on home", nil, domain.EventScreenDismissedByUser},
		{"cancel invitation off home", []domain.EventKind{domain.EventRegisterRequested}, domain.EventInvitationCancelled},
		{"unknown", nil, domain.EventKind("teleport")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			p := &recordingPresenter{}
			c := navigation.New(p)
			for _, k := range tt.setup {
				require.NoError(t, c.Handle(ctx, ev(k)))
			}
			before := c.Stack()
			commands := len(p.commands)

			err := c.Handle(ctx, ev(tt.event))
			assert.ErrorIs(t, err, domain.ErrUnexpectedEvent)
			assert.Equal(t, before, c.Stack())
			assert.Len(t, p.commands, commands)
		})
	}
}

func TestCoordinator_UserDismissPopsWithoutCommand(t *testing.T) {
	ctx := t.Context()
	p := &recordingPresenter{}

	var popped []domain.Screen
	c := navigation.New(p, navigation.WithOnPop(func(s domain.Screen) { popped = append(popped, s) }))
	require.NoError(t, c.Handle(ctx, ev(domain.EventRegisterRequested)))

	require.NoError(t, c.Handle(ctx, ev(domain.EventScreenDismissedByUser)))

	assert.Equal(t, []domain.Screen{domain.ScreenHome}, c.Stack())
	assert.Equal(t, []string{"present:registration"}, p.commands)
	assert.Equal(t, []domain.Screen{domain.ScreenRegistration}, popped)
}

func TestCoordinator_InvitationCancelledAlert(t *testing.T) {
	p := &recordingPresenter{}
	c := navigation.New(p)

	require.NoError(t, c.Handle(t.Context(), ev(domain.EventInvitationCancelled)))
	assert.Equal(t, []domain.Alert{{
		Title:   "Invitation Successfully Cancelled",
		Message: "You will not be notified when the Beta is out.",
	}}, p.alerts)
}

func TestCoordinator_PresenterFailureKeepsStack(t *testing.T) {
	ctx := t.Context()
	p := &recordingPresenter{failNext: true}

	var pushed []domain.Screen
	c := navigation.New(p, navigation.WithOnPush(func(s domain.Screen) { pushed = append(pushed, s) }))

	err := c.Handle(ctx, ev(domain.EventRegisterRequested))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnexpectedEvent)
	assert.Equal(t, []domain.Screen{domain.ScreenHome}, c.Stack())
	assert.Empty(t, pushed)

	require.NoError(t, c.Handle(ctx, ev(domain.EventRegisterRequested)))
	assert.Equal(t, []domain.Screen{domain.ScreenRegistration}, pushed)
}

// Every declared transition must be accepted by a coordinator standing on its source screen.
func TestTransitions_MatchHandle(t *testing.T) {
	reach := map[domain.Screen][]domain.EventKind{
		domain.ScreenHome:            nil,
		domain.ScreenRegistration:    {domain.EventRegisterRequested},
		domain.ScreenCongratulations: {domain.EventRegisterRequested, domain.EventRegistrationCompleted},
	}

	for _, tr := range navigation.Transitions() {
		t.Run(string(tr.From)+"/"+string(tr.Event), func(t *testing.T) {
			ctx := t.Context()
			c := navigation.New(&recordingPresenter{})
			for _, k := range reach[tr.From] {
				require.NoError(t, c.Handle(ctx, ev(k)))
			}
			require.Equal(t, tr.From, c.Top())

			require.NoError(t, c.Handle(ctx, ev(tr.Event)))
			assert.Equal(t, tr.To, c.Top())
		})
	}
}
