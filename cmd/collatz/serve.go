package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/collatz/pkg/adapters/http"
	"github.com/aretw0/collatz/internal/cli"
	"github.com/aretw0/collatz/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stats HTTP server",
	Long: `Serves the last exported state document as JSON on /stats, plus
static files from --static. The server never computes trajectories itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("addr") {
			cfg.Serve.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("state") {
			cfg.Serve.StatePath, _ = cmd.Flags().GetString("state")
		}
		if cmd.Flags().Changed("static") {
			cfg.Serve.StaticDir, _ = cmd.Flags().GetString("static")
		}
		if cmd.Flags().Changed("redis-addr") {
			cfg.Redis.Addr, _ = cmd.Flags().GetString("redis-addr")
		}

		store, closeStore := cli.OpenStore(cfg)
		defer closeStore()

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(registry)

		handler := httpAdapter.NewHandler(httpAdapter.Config{
			Store:     store,
			StaticDir: cfg.StaticRoot(),
			Hidden:    []string{filepath.Base(configPath(cmd))},
			Metrics:   metrics,
			Gatherer:  registry,
			Logger:    logger,
		})

		srv := &http.Server{
			Addr:              cfg.Serve.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting stats server", "addr", srv.Addr, "static", cfg.StaticRoot())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", "err", err)
				os.Exit(1)
			}

		case <-ctx.Done():
			logger.Info("shutting down")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("stats server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("state", "collatz_state.json", "State document served on /stats")
	serveCmd.Flags().String("static", "", "Directory served for other paths (default: the state file's directory)")
	serveCmd.Flags().String("redis-addr", "", "Read the state document from Redis instead of a file")
}
