package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/waitlist/internal/presentation/graph"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/navigation"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the navigation graph",
	Long: `Outputs a Mermaid diagram (graph TD) of the screens and the events that move
between them. --stack highlights a screen stack, e.g. --stack home,registration.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		stack, _ := cmd.Flags().GetStringSlice("stack")

		var overlay *graph.GraphOverlay
		if len(stack) > 0 {
			overlay = &graph.GraphOverlay{}
			for _, s := range stack {
				overlay.Stack = append(overlay.Stack, domain.Screen(strings.TrimSpace(s)))
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(navigation.Transitions(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("stack", nil, "Screen stack to highlight, bottom first")
}
