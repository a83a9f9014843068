package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"quiz-admin-service/internal/scheduler"
	transport "quiz-admin-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	c, err := loadComponents(ctx, configPath)
	if err != nil {
		return err
	}
	defer c.Close()
	logger := c.logger

	finalPort := portFlag
	if finalPort == "" {
		finalPort = c.cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	if c.cfg.Export.Schedule != "" {
		jobs := scheduler.New(c.results, c.cfg.Export.Format, logger)
		if err := jobs.Start(c.cfg.Export.Schedule); err != nil {
			return err
		}
		defer jobs.Stop()
	}

	handler := transport.NewHandler(transport.Services{
		Auth:      c.auth,
		Questions: c.questions,
		Results:   c.results,
		Settings:  c.settings,
	}, logger, c.cfg.Server.ExposeErrorDetails)
	wsHandler := transport.NewWSHandler(c.feed, logger)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(handler, wsHandler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting quiz service", "port", finalPort, "dataDir", c.cfg.Data.Dir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case err := <-errCh:
		logger.Error("failed to start server", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
