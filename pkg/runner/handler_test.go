package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/waitlist/pkg/domain"
)

func collect(t *testing.T, ch <-chan InputResult) []string {
	t.Helper()
	var lines []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case res, ok := <-ch:
			if !ok {
				return lines
			}
			require.NoError(t, res.Err)
			lines = append(lines, res.Text)
		case <-timeout:
			t.Fatal("input stream was not closed")
		}
	}
}

func TestTextHandler_PresentScreen(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	require.NoError(t, h.PresentScreen(context.Background(), domain.ScreenCongratulations))
	assert.Contains(t, out.String(), "Rendered: ## Success!!!")

	out.Reset()
	require.NoError(t, h.PresentScreen(context.Background(), domain.ScreenHome))
	assert.Empty(t, out.String(), "home is drawn by ShowHome")
}

func TestTextHandler_PresentAlert(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out, WithAlertStyle(strings.ToUpper))

	err := h.PresentAlert(context.Background(), domain.Alert{Title: "Oops", Message: "We couldn't register you\nslot full"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "! OOPS\nWe couldn't register you\nslot full")
}

func TestTextHandler_ShowHome(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out)

	require.NoError(t, h.ShowHome(context.Background(), domain.NewHomeView("", false)))
	assert.Contains(t, out.String(), Title)
	assert.Contains(t, out.String(), "[r] Request an Invitation")
	assert.NotContains(t, out.String(), "[c]")

	out.Reset()
	require.NoError(t, h.ShowHome(context.Background(), domain.NewHomeView("user@email.com", true)))
	assert.Contains(t, out.String(), "You have successfully registered user@email.com")
	assert.Contains(t, out.String(), "[c] Cancel Invitation")
	assert.NotContains(t, out.String(), "[r]")
}

func TestTextHandler_Prompt(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out)

	require.NoError(t, h.Prompt(context.Background(), ""))
	require.NoError(t, h.Prompt(context.Background(), "Email"))
	assert.Equal(t, "> Email: ", out.String())
}

func TestTextHandler_Input(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h := NewTextHandler(strings.NewReader("User\nuser@email.com"), &bytes.Buffer{})
	assert.Equal(t, []string{"User\n", "user@email.com"}, collect(t, h.Input()))
}

func TestTextHandler_CloseStopsPump(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h := NewTextHandler(strings.NewReader("a\nb\nc\n"), &bytes.Buffer{})
	ch := h.Input()
	first := <-ch
	assert.Equal(t, "a\n", first.Text)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	collect(t, ch)
}

func TestJSONHandler_Output(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewJSONHandler(strings.NewReader(""), out)
	ctx := context.Background()

	require.NoError(t, h.ShowHome(ctx, domain.NewHomeView("", false)))
	require.NoError(t, h.PresentScreen(ctx, domain.ScreenRegistration))
	require.NoError(t, h.Prompt(ctx, "Email"))
	require.NoError(t, h.PresentAlert(ctx, domain.Alert{Title: "Oops", Message: "nope"}))
	require.NoError(t, h.DismissScreen(ctx, domain.ScreenRegistration))
	require.NoError(t, h.SystemOutput(ctx, "hello"))

	dec := json.NewDecoder(out)
	var msgs []Message
	for dec.More() {
		var m Message
		require.NoError(t, dec.Decode(&m))
		msgs = append(msgs, m)
	}

	require.Len(t, msgs, 6)
	assert.Equal(t, Message{
		Type:        MessageHome,
		Description: "This service is in closed beta for people who have requested an invite.",
		Actions:     []string{"register", "quit"},
	}, msgs[0])
	assert.Equal(t, Message{Type: MessagePresent, Screen: "registration"}, msgs[1])
	assert.Equal(t, Message{Type: MessagePrompt, Label: "Email"}, msgs[2])
	assert.Equal(t, Message{Type: MessageAlert, Title: "Oops", Message: "nope"}, msgs[3])
	assert.Equal(t, Message{Type: MessageDismiss, Screen: "registration"}, msgs[4])
	assert.Equal(t, Message{Type: MessageSystem, Message: "hello"}, msgs[5])
}

func TestJSONHandler_Input(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h := NewJSONHandler(strings.NewReader("\"user@email.com\"\nback\n\"\"\n"), &bytes.Buffer{})
	assert.Equal(t, []string{"user@email.com", "back", ""}, collect(t, h.Input()))
}

func TestConfirmationPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			out := &bytes.Buffer{}
			h := NewTextHandler(strings.NewReader(tt.input), out)
			defer h.Close()

			ok, err := ConfirmationPrompt(h)(context.Background(), "Are you sure?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "Are you sure?")
			assert.Contains(t, out.String(), "y/N: ")
		})
	}
}

func TestConfirmationPrompt_EndOfInput(t *testing.T) {
	h := NewTextHandler(strings.NewReader(""), &bytes.Buffer{})
	_, err := ConfirmationPrompt(h)(context.Background(), "Are you sure?")
	assert.Error(t, err)
}

func TestAutoApprove(t *testing.T) {
	ok, err := AutoApprove()(context.Background(), "Are you sure?")
	require.NoError(t, err)
	assert.True(t, ok)
}
