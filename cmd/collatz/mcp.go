package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/collatz/internal/cli"
	"github.com/aretw0/collatz/pkg/adapters/mcp"
	"github.com/aretw0/collatz/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the Collatz engine as an MCP Server.
This allows AI agents to compute trajectories and stopping times as tools,
and to read the last exported state as a resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.MCP.Port, _ = cmd.Flags().GetInt("port")
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		store, closeStore := cli.OpenStore(cfg)
		defer closeStore()

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		srv := mcp.NewServer(newEngine(cmd, metrics.Hooks()), store)
		srv.Mount("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		switch cfg.MCP.Transport {
		case "stdio":
			logger.Info("starting MCP server", "transport", "stdio")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("starting MCP server", "transport", "sse", "port", cfg.MCP.Port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
			logger.Info("MCP server stopped gracefully")
		default:
			fail("Unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Int("guard", 1_000_000, "Maximum number of steps before giving up")
}
