package main

import (
	"fmt"

	"github.com/aretw0/collatz/internal/cli"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/spf13/cobra"
)

var stoppingTimeCmd = &cobra.Command{
	Use:   "stopping-time <seed>",
	Short: "Print the stopping time of a seed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		seed, err := cli.ParseSeed(args[0])
		if err != nil {
			fail("Seed must be a positive integer, got %q.", args[0])
		}

		eng := newEngine(cmd, domain.LifecycleHooks{})
		steps, err := eng.StoppingTime(seed)
		if err != nil {
			fail("Error: %v", err)
		}
		total, err := eng.TotalStoppingTime(seed)
		if err != nil {
			fail("Error: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Stopping time: %d\nTotal stopping time: %d\n", steps, total)
	},
}

func init() {
	rootCmd.AddCommand(stoppingTimeCmd)

	stoppingTimeCmd.Flags().Int("guard", 1_000_000, "Maximum number of steps before giving up")
}
