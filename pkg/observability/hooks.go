package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/waitlist/pkg/domain"
)

// Combine merges hook sets. Each callback runs in the order given.
func Combine(hooks ...domain.FlowHooks) domain.FlowHooks {
	var onSubmit, onResult []func(context.Context, *domain.SubmitEvent)
	for _, h := range hooks {
		if h.OnSubmit != nil {
			onSubmit = append(onSubmit, h.OnSubmit)
		}
		if h.OnResult != nil {
			onResult = append(onResult, h.OnResult)
		}
	}

	var combined domain.FlowHooks
	if len(onSubmit) > 0 {
		combined.OnSubmit = func(ctx context.Context, e *domain.SubmitEvent) {
			for _, fn := range onSubmit {
				fn(ctx, e)
			}
		}
	}
	if len(onResult) > 0 {
		combined.OnResult = func(ctx context.Context, e *domain.SubmitEvent) {
			for _, fn := range onResult {
				fn(ctx, e)
			}
		}
	}
	return combined
}

// LoggingHooks logs every submission and its result.
func LoggingHooks(logger *slog.Logger) domain.FlowHooks {
	return domain.FlowHooks{
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.Info("submit_start", "request_id", e.RequestID, "email", e.Registration.Email)
		},
		OnResult: func(ctx context.Context, e *domain.SubmitEvent) {
			if e.Err != nil {
				logger.Warn("submit_result",
					"request_id", e.RequestID,
					"outcome", Outcome(e.Err),
					"duration", e.Duration,
					"error", e.Err,
				)
				return
			}
			logger.Info("submit_result",
				"request_id", e.RequestID,
				"outcome", Outcome(e.Err),
				"duration", e.Duration,
			)
		},
	}
}
