package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/deckforge/internal/api"
	"github.com/phrazzld/deckforge/internal/events"
	"github.com/phrazzld/deckforge/internal/task"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(newApp appFactory) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for background deck jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			if port > 0 {
				app.config.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")
	return cmd
}

// apiServer is the HTTP handler and the job runner behind it.
type apiServer struct {
	handler http.Handler
	runner  *task.TaskRunner
}

// newAPIServer wires the job store, the runner and the router.
func (app *application) newAPIServer() (*apiServer, error) {
	store := task.NewMemoryStore()

	runner, err := task.NewTaskRunner(store, task.TaskRunnerConfig{
		WorkerCount: app.config.Task.WorkerCount,
		QueueSize:   app.config.Task.QueueSize,
	}, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task runner: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(events.HandlerFunc(func(_ context.Context, e *events.JobEvent) error {
		app.metrics.JobTransition(e.JobType, e.Status)
		return nil
	}))
	runner.SetEventEmitter(emitter)

	factory, err := task.NewDeckTaskFactory(app.decks, store, app.config.Deck.OutputDir, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	decks, err := api.NewDeckHandler(factory, runner, store, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck handler: %w", err)
	}

	return &apiServer{
		handler: api.NewRouter(api.RouterConfig{
			Decks:   decks,
			Metrics: app.metrics.Handler(),
			Logger:  app.logger,
		}),
		runner: runner,
	}, nil
}

// serve runs the API until ctx is cancelled, then shuts the server down and
// stops the workers.
func (app *application) serve(ctx context.Context) error {
	srv, err := app.newAPIServer()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           srv.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srv.runner.Start()
	defer srv.runner.Stop()

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			errCh <- err
			cancelServer()
		}
	}()

	<-serverCtx.Done()
	app.logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	default:
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
