package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/waitlist/pkg/domain"
)

// Title is the heading of the home screen.
const Title = "Brocolli & Co."

// ContentRenderer transforms markdown before it is written (e.g. glamour).
type ContentRenderer func(string) (string, error)

// Styler decorates a short line of text, typically with terminal colors.
type Styler func(string) string

var screenContent = map[domain.Screen]string{
	domain.ScreenRegistration: "## Registration\n\n" +
		"Tell us who you are to get access. Type `back` to return home.",
	domain.ScreenCongratulations: "## Success!!!\n\n🎉 Stay Tuned 😎",
}

// TextHandler implements IOHandler for an interactive terminal.
type TextHandler struct {
	*linePump

	Writer     io.Writer
	Renderer   ContentRenderer
	AlertStyle Styler
}

var _ IOHandler = (*TextHandler)(nil)

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithAlertStyle configures how alert titles are highlighted.
func WithAlertStyle(style Styler) TextHandlerOption {
	return func(h *TextHandler) {
		h.AlertStyle = style
	}
}

// NewTextHandler creates a handler for standard text IO.
// Nil arguments default to stdin and stdout.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		linePump: newLinePump(r, nil),
		Writer:   w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) PresentScreen(ctx context.Context, screen domain.Screen) error {
	content, ok := screenContent[screen]
	if !ok {
		return nil
	}
	return h.render(content)
}

// DismissScreen writes nothing: the next prompt makes the change visible.
func (h *TextHandler) DismissScreen(ctx context.Context, screen domain.Screen) error {
	return nil
}

func (h *TextHandler) PresentAlert(ctx context.Context, alert domain.Alert) error {
	title := alert.Title
	if h.AlertStyle != nil {
		title = h.AlertStyle(title)
	}
	_, err := fmt.Fprintf(h.Writer, "\n! %s\n%s\n\n", title, alert.Message)
	return err
}

func (h *TextHandler) ShowHome(ctx context.Context, home domain.HomeView) error {
	if err := h.render("# " + Title + "\n\n" + home.Description); err != nil {
		return err
	}
	var b strings.Builder
	if home.ShowRegister {
		b.WriteString("  [r] Request an Invitation\n")
	}
	if home.ShowCancel {
		b.WriteString("  [c] Cancel Invitation\n")
	}
	b.WriteString("  [q] Quit\n")
	_, err := io.WriteString(h.Writer, b.String())
	return err
}

func (h *TextHandler) Prompt(ctx context.Context, label string) error {
	if label == "" {
		_, err := io.WriteString(h.Writer, "> ")
		return err
	}
	_, err := fmt.Fprintf(h.Writer, "%s: ", label)
	return err
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "\n[System] %s\n", msg)
	return err
}

func (h *TextHandler) render(markdown string) error {
	output := markdown
	if h.Renderer != nil {
		if rendered, err := h.Renderer(markdown); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	return err
}
