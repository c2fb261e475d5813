package main

import (
	"context"

	"github.com/aretw0/waitlist/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the waitlist API",
	Long: `Serves POST /register (and /fakeAuth), /health, /info and /metrics.
Point "endpoint" at it to run the whole flow locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("capacity") {
			cfg.Server.Capacity, _ = cmd.Flags().GetInt("capacity")
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx := cli.NewSignalContext(parent)
		defer ctx.Cancel()

		err := cli.Serve(ctx, cli.ServeOptions{Config: cfg, Logger: logger})
		if sig := ctx.Signal(); sig != nil {
			logger.Info("waitlist server stopped", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().Int("capacity", 0, "Maximum number of registrations (0 is unlimited)")
}
