package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/waitlist"
	"github.com/aretw0/waitlist/internal/config"
	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/internal/presentation/tui"
	"github.com/aretw0/waitlist/pkg/adapters/http"
	"github.com/aretw0/waitlist/pkg/dispatch"
	"github.com/aretw0/waitlist/pkg/observability"
	"github.com/aretw0/waitlist/pkg/runner"
)

// RunOptions contains everything the run command needs.
type RunOptions struct {
	Config   config.Config
	Logger   *slog.Logger
	JSON     bool
	Headless bool

	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// NewClient builds the registration client for the configured endpoint.
func NewClient(cfg config.Config, logger *slog.Logger) *http.Client {
	return http.NewClient(cfg.Endpoint,
		http.WithTimeout(cfg.Timeout),
		http.WithClientLogger(logger),
	)
}

// RunSession runs the registration flow on the terminal until the user quits.
func RunSession(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	backend, err := OpenBackend(opts.Config)
	if err != nil {
		return err
	}
	defer backend.Close()

	loop := dispatch.NewLoop()
	defer loop.Close()

	handler := newHandler(opts, in, out)
	defer handler.Close()

	app, err := waitlist.New(
		waitlist.WithClient(NewClient(opts.Config, logger)),
		waitlist.WithPresenter(handler),
		waitlist.WithDispatcher(loop),
		waitlist.WithStore(backend.Store),
		waitlist.WithStoreKey(opts.Config.Store.Key),
		waitlist.WithFlowHooks(observability.LoggingHooks(logger)),
		waitlist.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	r := runner.NewRunner(
		runner.WithApp(app),
		runner.WithLoop(loop),
		runner.WithInputHandler(handler),
		runner.WithHeadless(opts.Headless || opts.JSON),
		runner.WithLogger(logger),
	)
	return handleExecutionError(r.Run(ctx))
}

func newHandler(opts RunOptions, in io.Reader, out io.Writer) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(in, out)
	}

	var handlerOpts []runner.TextHandlerOption
	if f, ok := out.(*os.File); ok && !opts.Headless && tui.IsTerminal(f) {
		tui.PrintBanner(out, waitlist.Version)
		handlerOpts = append(handlerOpts,
			runner.WithTextHandlerRenderer(tui.NewRenderer()),
			runner.WithAlertStyle(tui.AlertStyle()),
		)
	}
	return runner.NewTextHandler(in, out, handlerOpts...)
}

// handleExecutionError turns interruptions into a clean exit.
func handleExecutionError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return fmt.Errorf("run failed: %w", err)
}
