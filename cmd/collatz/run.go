package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/collatz/internal/cli"
	"github.com/aretw0/collatz/internal/presentation/tui"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <seed>",
	Short: "Compute the trajectory of a seed",
	Long: `Computes the Collatz trajectory of a positive integer seed and prints a
summary. The retained sequence is capped by --limit (0 keeps every value);
steps and max value always describe the full trajectory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := cli.ParseSeed(args[0])
		if err != nil {
			return fmt.Errorf("Seed must be a positive integer, got %q.", args[0])
		}
		limit, err := limitFlag(cmd)
		if err != nil {
			return errors.New("Limit must be a non-negative integer.")
		}
		eng := newEngine(cmd, domain.LifecycleHooks{})

		printSequence, _ := cmd.Flags().GetBool("print-sequence")
		format, _ := cmd.Flags().GetString("format")
		exportJSON, _ := cmd.Flags().GetString("export-json")
		exportRedis, _ := cmd.Flags().GetBool("export-redis")

		stores, closeStores, err := cli.OpenExportStores(cfg, exportJSON, exportRedis)
		if err != nil {
			return err
		}
		defer closeStores()

		opts := cli.RunOptions{
			Seed:          seed,
			Limit:         limit,
			PrintSequence: printSequence,
			Format:        format,
			Stores:        stores,
		}
		if format == cli.FormatMarkdown && tui.IsTerminal(os.Stdout) {
			opts.Markdown = tui.NewRenderer()
		}
		if format == "" || format == cli.FormatText {
			banner(cmd)
		}

		if _, err := cli.Execute(cmd.Context(), eng, cmd.OutOrStdout(), opts); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidInput):
				return fmt.Errorf("Seed must be a positive integer, got %q.", args[0])
			case errors.Is(err, domain.ErrGuardExceeded):
				return fmt.Errorf("Error: %w (raise --guard to walk further)", err)
			default:
				return fmt.Errorf("Error: %w", err)
			}
		}

		if exportJSON != "" {
			logger.Info("exported state", "path", exportJSON)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("limit", "l", "", "Maximum number of values to keep (0 or 'none' keeps all; default from config, 256)")
	runCmd.Flags().Int("guard", 1_000_000, "Maximum number of steps before giving up")
	runCmd.Flags().BoolP("print-sequence", "p", false, "Print the retained sequence")
	runCmd.Flags().String("export-json", "", "Write the result as a JSON document to this path")
	runCmd.Flags().Bool("export-redis", false, "Write the result to the configured Redis key")
	runCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown, json or mermaid")
}
