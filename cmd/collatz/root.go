package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/collatz"
	"github.com/aretw0/collatz/internal/cli"
	"github.com/aretw0/collatz/internal/config"
	"github.com/aretw0/collatz/internal/logging"
	"github.com/aretw0/collatz/internal/presentation/tui"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "collatz",
	Short: "Collatz is a 3x+1 trajectory engine",
	Long: `Collatz computes and reports trajectories of the 3x+1 iteration.
It prints summaries, exports state documents, serves them over HTTP and
exposes the engine to AI agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfigPath(cmd))
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
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
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the banner")
}

func flagConfigPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// configPath is the config file in effect, explicit or the default lookup.
func configPath(cmd *cobra.Command) string {
	if path := flagConfigPath(cmd); path != "" {
		return path
	}
	return config.DefaultFile
}

// newEngine builds the engine from the config, letting an explicit --guard win.
// A non-positive guard is a usage error for every command.
func newEngine(cmd *cobra.Command, hooks domain.LifecycleHooks) *collatz.Engine {
	guard := cfg.Guard
	if f := cmd.Flags().Lookup("guard"); f != nil && f.Changed {
		guard, _ = cmd.Flags().GetInt("guard")
	}
	if guard < 1 {
		fail("Guard must be a positive integer.")
	}
	return collatz.New(
		collatz.WithGuard(guard),
		collatz.WithLimit(cfg.Limit),
		collatz.WithLogger(logger),
		collatz.WithLifecycleHooks(hooks),
	)
}

// limitFlag returns the --limit flag when set, the configured limit otherwise.
func limitFlag(cmd *cobra.Command) (int, error) {
	if !cmd.Flags().Changed("limit") {
		return cfg.Limit, nil
	}
	raw, _ := cmd.Flags().GetString("limit")
	return cli.ParseLimit(raw)
}

// banner prints the banner on interactive terminals unless disabled.
func banner(cmd *cobra.Command) {
	noBanner, _ := cmd.Flags().GetBool("no-banner")
	if noBanner || !tui.IsTerminal(os.Stdout) {
		return
	}
	tui.PrintBanner(cmd.OutOrStdout())
}

// fail prints a user-facing message and exits non-zero.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
