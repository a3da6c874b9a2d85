package main

import (
	"github.com/aretw0/collatz/internal/adapters/file"
	"github.com/aretw0/collatz/internal/logging"
	"github.com/aretw0/collatz/internal/presentation/tui"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/ports"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Open the interactive explorer",
	Long: `Opens a terminal form to compute trajectories interactively.
Press ctrl+s to export the current result as a JSON document.`,
	Run: func(cmd *cobra.Command, args []string) {
		seed, _ := cmd.Flags().GetInt64("seed")
		if seed < 1 {
			fail("Seed must be a positive integer, got %d.", seed)
		}
		limit, err := limitFlag(cmd)
		if err != nil {
			fail("Limit must be a non-negative integer.")
		}

		// Logs would tear the alternate screen.
		logger = logging.NewNop()
		eng := newEngine(cmd, domain.LifecycleHooks{})
		model := tui.NewExplorerModel(eng, seed, limit, func(path string) ports.StateStore {
			return file.New(path)
		})
		if err := tui.RunExplorer(model); err != nil {
			fail("Error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().Int64("seed", 27, "Initial seed")
	exploreCmd.Flags().String("limit", "", "Initial display limit (default from config, 256)")
	exploreCmd.Flags().Int("guard", 1_000_000, "Maximum number of steps before giving up")
}
