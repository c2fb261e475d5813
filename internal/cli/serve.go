package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	nethttp "net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/waitlist/internal/config"
	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/adapters/http"
	"github.com/aretw0/waitlist/pkg/observability"
	"github.com/aretw0/waitlist/pkg/roster"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the local waitlist API.
type ServeOptions struct {
	Config config.Config
	Logger *slog.Logger
	// Listener overrides Config.Server.Addr.
	Listener net.Listener
}

// Serve runs the waitlist API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	backend, err := OpenBackend(opts.Config)
	if err != nil {
		return err
	}
	defer backend.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	rosterOpts := []roster.Option{
		roster.WithCapacity(opts.Config.Server.Capacity),
		roster.WithLogger(logger),
	}
	if backend.Locker != nil {
		rosterOpts = append(rosterOpts, roster.WithLocker(backend.Locker))
	}
	waitlist := roster.New(backend.Store, rosterOpts...)

	refresh := func() {
		n, err := waitlist.Count(context.WithoutCancel(ctx))
		if err != nil {
			logger.Warn("failed to count registrations", "error", err)
			return
		}
		metrics.SetRegistered(n)
	}
	refresh()

	handler := http.NewHandler(waitlist,
		http.WithServerLogger(logger),
		http.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		http.WithRegistrationObserver(func(outcome string) {
			metrics.ObserveServerRegistration(outcome)
			if outcome == http.OutcomeAccepted {
				refresh()
			}
		}),
	)

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", opts.Config.Server.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	}

	srv := &nethttp.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("waitlist server listening", "addr", ln.Addr().String(), "capacity", waitlist.Capacity())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down waitlist server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
	}
	if err := <-serverErrors; err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}
