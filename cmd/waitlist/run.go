package main

import (
	"github.com/aretw0/waitlist/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive registration flow",
	Long: `Shows the home screen and lets you request an invitation or cancel the one
you hold. The first Ctrl+C cancels a registration in flight, the next exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.RunSession(cmd.Context(), cli.RunOptions{
			Config:   cfg,
			Logger:   logger,
			Headless: headless,
			JSON:     jsonMode,
			In:       cmd.InOrStdin(),
			Out:      cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Plain output and no confirmation prompts")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
