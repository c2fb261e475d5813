package runner

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/ports"
)

// IOHandler is the terminal side of the registration flow.
// It presents what the navigation coordinator asks for and streams user input.
// Text and JSON-lines implementations exist.
type IOHandler interface {
	ports.Presenter

	// ShowHome renders the home screen and the commands available on it.
	ShowHome(ctx context.Context, home domain.HomeView) error

	// Prompt asks for the next line. An empty label is a bare command prompt.
	Prompt(ctx context.Context, label string) error

	// SystemOutput presents a meta-message (validation feedback, status).
	SystemOutput(ctx context.Context, msg string) error

	// Input streams raw lines. The channel is closed at end of input.
	Input() <-chan InputResult

	// Close stops the input stream.
	Close() error
}

// InputResult is one line read by an IOHandler.
type InputResult struct {
	Text string
	Err  error
}

// linePump reads lines on its own goroutine so the runner can select between
// input and dispatched results.
type linePump struct {
	reader *bufio.Reader
	decode func(string) string

	ch        chan InputResult
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func newLinePump(r io.Reader, decode func(string) string) *linePump {
	return &linePump{
		reader: bufio.NewReader(r),
		decode: decode,
		ch:     make(chan InputResult),
		done:   make(chan struct{}),
	}
}

func (p *linePump) Input() <-chan InputResult {
	p.startOnce.Do(func() {
		go p.run()
	})
	return p.ch
}

func (p *linePump) run() {
	defer close(p.ch)
	for {
		text, err := p.reader.ReadString('\n')
		if text != "" {
			if p.decode != nil {
				text = p.decode(text)
			}
			if !p.send(InputResult{Text: text}) {
				return
			}
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			if !p.send(InputResult{Err: err}) {
				return
			}
			// Back off so a persistently failing reader does not spin.
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (p *linePump) send(res InputResult) bool {
	select {
	case p.ch <- res:
		return true
	case <-p.done:
		return false
	}
}

func (p *linePump) Close() error {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	return nil
}
