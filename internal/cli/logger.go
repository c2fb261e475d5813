package cli

import (
	"io"
	"log/slog"

	"github.com/aretw0/waitlist/internal/config"
	"github.com/aretw0/waitlist/internal/logging"
)

// NewLogger configures the application logger. Debug forces the debug level.
// Logs go to w (stderr by default) to stay out of the flow UI on stdout.
func NewLogger(cfg config.LogConfig, debug bool, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithOptions(logging.Options{
		Level:  level,
		Format: cfg.Format,
		Output: w,
	}), nil
}
