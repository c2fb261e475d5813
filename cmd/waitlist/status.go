package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/waitlist/internal/cli"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print what the home screen shows",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := cli.Status(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), status.Home().Description)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel your invitation",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := cli.CancelInvitation(cmd.Context(), cfg)
		if errors.Is(err, domain.ErrNotRegistered) {
			fmt.Fprintln(cmd.OutOrStdout(), "There is no invitation to cancel.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s (%s)\n", domain.CancelledAlertTitle, domain.CancelledAlertBody, email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cancelCmd)
}
