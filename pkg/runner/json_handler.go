package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/waitlist/pkg/domain"
)

// Message is one JSON line written by JSONHandler.
type Message struct {
	Type        string   `json:"type"`
	Screen      string   `json:"screen,omitempty"`
	Title       string   `json:"title,omitempty"`
	Message     string   `json:"message,omitempty"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	Actions     []string `json:"actions,omitempty"`
}

// Message types emitted by JSONHandler.
const (
	MessagePresent = "present"
	MessageDismiss = "dismiss"
	MessageAlert   = "alert"
	MessageHome    = "home"
	MessagePrompt  = "prompt"
	MessageSystem  = "system"
)

// JSONHandler implements IOHandler for structured JSON-Lines communication,
// for driving the flow from another program.
//
// Input lines may be JSON strings ("user@email.com") or raw text.
type JSONHandler struct {
	*linePump

	mu      sync.Mutex
	Encoder *json.Encoder
}

var _ IOHandler = (*JSONHandler)(nil)

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		linePump: newLinePump(r, decodeJSONLine),
		Encoder:  json.NewEncoder(w),
	}
}

func decodeJSONLine(line string) string {
	text := strings.TrimSpace(line)
	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val
	}
	return text
}

func (h *JSONHandler) emit(msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(msg)
}

func (h *JSONHandler) PresentScreen(ctx context.Context, screen domain.Screen) error {
	return h.emit(Message{Type: MessagePresent, Screen: string(screen)})
}

func (h *JSONHandler) DismissScreen(ctx context.Context, screen domain.Screen) error {
	return h.emit(Message{Type: MessageDismiss, Screen: string(screen)})
}

func (h *JSONHandler) PresentAlert(ctx context.Context, alert domain.Alert) error {
	return h.emit(Message{Type: MessageAlert, Title: alert.Title, Message: alert.Message})
}

func (h *JSONHandler) ShowHome(ctx context.Context, home domain.HomeView) error {
	var actions []string
	if home.ShowRegister {
		actions = append(actions, commandRegister)
	}
	if home.ShowCancel {
		actions = append(actions, commandCancel)
	}
	actions = append(actions, commandQuit)
	return h.emit(Message{Type: MessageHome, Description: home.Description, Actions: actions})
}

func (h *JSONHandler) Prompt(ctx context.Context, label string) error {
	return h.emit(Message{Type: MessagePrompt, Label: label})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(Message{Type: MessageSystem, Message: msg})
}
