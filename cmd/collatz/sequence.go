package main

import (
	"bufio"
	"strconv"

	"github.com/aretw0/collatz/internal/cli"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <seed>",
	Short: "Print the full trajectory of a seed",
	Long: `Streams every value from the seed down to 1, joined by arrows.
With --summary the stopping time and total stopping time follow the sequence.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		seed, err := cli.ParseSeed(args[0])
		if err != nil {
			fail("Seed must be a positive integer, got %q.", args[0])
		}

		eng := newEngine(cmd, domain.LifecycleHooks{})

		if summary, _ := cmd.Flags().GetBool("summary"); summary {
			result, err := eng.Compute(cmd.Context(), seed, domain.Unbounded)
			if err != nil {
				fail("Error: %v", err)
			}
			if err := cli.WriteSequenceSummary(cmd.OutOrStdout(), result); err != nil {
				fail("Error: %v", err)
			}
			return
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		defer out.Flush()

		first := true
		for v, err := range eng.Trajectory(seed) {
			if err != nil {
				out.Flush()
				fail("\nError: %v", err)
			}
			if !first {
				out.WriteString(cli.ArrowSeparator)
			}
			first = false
			out.WriteString(strconv.FormatInt(v, 10))
		}
		out.WriteString("\n")
	},
}

func init() {
	rootCmd.AddCommand(sequenceCmd)

	sequenceCmd.Flags().BoolP("summary", "s", false, "Print stopping times after the sequence")
	sequenceCmd.Flags().Int("guard", 1_000_000, "Maximum number of steps before giving up")
}
