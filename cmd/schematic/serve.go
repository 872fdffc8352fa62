package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/internal/presentation/tui"
	httpAdapter "github.com/aretw0/schematic/pkg/adapters/http"
	"github.com/aretw0/schematic/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Starts schematic in stateless server mode, exposing kinds and validation
as a JSON API over HTTP. Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		maxBody, _ := cmd.Flags().GetInt64("max-body")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		catalog, logger, err := loadCatalog(cmd, schematic.WithHooks(metrics.Hooks()))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr: ":" + port,
			Handler: httpAdapter.NewHandler(catalog,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMetrics(reg),
				httpAdapter.WithMaxBodyBytes(maxBody),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(cmd.ErrOrStderr())

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting schematic server", "addr", srv.Addr, "kinds", catalog.Kinds())
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err

		case sig := <-shutdown:
			logger.Info("start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
			logger.Info("schematic server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", envOr("SCHEMATIC_PORT", "8080"), "Port to listen on [SCHEMATIC_PORT]")
	serveCmd.Flags().Int64("max-body", httpAdapter.DefaultMaxBodyBytes, "Maximum size in bytes of a validation request body")
}
