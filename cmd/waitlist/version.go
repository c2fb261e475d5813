package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/waitlist"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of waitlist",
	// Skips loading the config.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "waitlist version %s\n", strings.TrimSpace(waitlist.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
