package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/waitlist/internal/cli"
	"github.com/aretw0/waitlist/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Request an invitation to the closed beta",
	Long: `waitlist registers you for the closed beta from the terminal, remembers
that you did, and lets you cancel the invitation later.

It also ships the waitlist API itself ("waitlist serve") for local development.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logger, err = cli.NewLogger(cfg.Log, debug, os.Stderr)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "waitlist.yaml", "Config file (YAML or JSON); optional")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level to stderr")
}
