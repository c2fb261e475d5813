package runner

import (
	"context"
	"io"
	"strings"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer func(ctx context.Context, question string) (bool, error)

// ConfirmationPrompt asks through the handler and reads the answer from its
// input stream. Only "y" and "yes" approve.
func ConfirmationPrompt(handler IOHandler) Confirmer {
	return func(ctx context.Context, question string) (bool, error) {
		if err := handler.SystemOutput(ctx, question); err != nil {
			return false, err
		}
		if err := handler.Prompt(ctx, "y/N"); err != nil {
			return false, err
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case res, ok := <-handler.Input():
			if !ok {
				return false, io.EOF
			}
			if res.Err != nil {
				return false, res.Err
			}
			answer := strings.ToLower(strings.TrimSpace(res.Text))
			return answer == "y" || answer == "yes", nil
		}
	}
}

// AutoApprove approves everything. Used in headless mode.
func AutoApprove() Confirmer {
	return func(context.Context, string) (bool, error) {
		return true, nil
	}
}
