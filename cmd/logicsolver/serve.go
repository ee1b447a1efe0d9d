package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/manukrishna804/logic-solver-ai/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP API and index page. History pruning runs in the background when history is enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, configPath(cmd), os.Stderr, appOptions{Generator: true, History: true, Pruner: true})
		if err != nil {
			return err
		}
		defer a.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			a.cfg.ListenAddr = addr
		}
		return runServe(ctx, a)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides listen_addr)")
}

func runServe(ctx context.Context, a *app) error {
	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(server.Deps{
		Service:        a.service,
		Validator:      a.validator,
		Hub:            a.hub,
		AllowedOrigins: a.cfg.AllowedOrigins,
		RequestTimeout: a.durations.RequestTimeout,
		Version:        version,
		Logger:         a.logger,
	})

	if a.pruner != nil {
		if err := a.pruner.Start(ctx); err != nil {
			return err
		}
	}

	httpSrv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening",
			"addr", httpSrv.Addr,
			"model_initialized", a.service.Health(ctx).ModelInitialized,
			"history", a.store != nil)
		serverErrors <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)

	case <-ctx.Done():
		a.logger.Info("shutting down http server")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("graceful shutdown did not complete", "error", err)
			return httpSrv.Close()
		}
		return nil
	}
}
