package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"taskapp/internal/api"
	apimiddleware "taskapp/internal/api/middleware"
	"taskapp/internal/config"
	"taskapp/internal/router"
	"taskapp/internal/store"
	"taskapp/internal/web"
)

// shutdownTimeout bounds how long a graceful shutdown may take before
// in-flight requests are abandoned.
const shutdownTimeout = 10 * time.Second

// application holds the process-wide dependencies, constructed once
// in main and injected into the route handlers. No handler reaches
// for ambient state.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	taskStore store.TaskStore
}

func newApplication(cfg *config.Config, logger *slog.Logger, taskStore store.TaskStore) *application {
	if logger == nil {
		logger = slog.Default()
	}
	return &application{
		config:    cfg,
		logger:    logger,
		taskStore: taskStore,
	}
}

// setupRouter assembles the full HTTP surface: standard middleware,
// the task dispatcher mounted under /tasks, the health endpoint, and
// the embedded browser client at the root.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace(app.logger))

	dispatcher := router.New(app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	taskHandler.RegisterRoutes(dispatcher)

	// The dispatcher owns everything under /tasks, including its own
	// 404/405 handling for unmatched shapes like /tasks/42/extra.
	r.Handle("/tasks", dispatcher)
	r.Handle("/tasks/*", dispatcher)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Handle("/*", web.Handler())

	return r
}

// startHTTPServer starts the HTTP server with graceful shutdown on
// SIGINT/SIGTERM. It blocks until the server has stopped.
func (app *application) startHTTPServer(ctx context.Context, handler http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: handler,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
