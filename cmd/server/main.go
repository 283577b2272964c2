// Package main implements the entry point for the task API server:
// a CRUD HTTP surface over the tasks table plus the embedded browser
// client.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"taskapp/internal/config"
	"taskapp/internal/platform/logger"
	"taskapp/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Redacted())

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		if *migrateCmd != "" {
			log.Fatalf("Failed to connect to database for migrations: %v", err)
		}
		// The HTTP surface still comes up; every API call will carry
		// the uniform error payload until the database is reachable.
		appLogger.Warn("database unreachable, serving in degraded mode", "error", err)
		db = nil
	}

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd); err != nil {
			log.Fatalf("Migration %q failed: %v", *migrateCmd, err)
		}
		return
	}

	if db != nil && cfg.Database.AutoMigrate {
		if err := runMigrations(db, "up"); err != nil {
			appLogger.Error("automatic migration failed", "error", err)
		}
	}

	taskStore, err := postgres.NewTaskStore(ctx, db, appLogger)
	if err != nil {
		appLogger.Warn("task store degraded", "error", err)
	}

	app := newApplication(cfg, appLogger, taskStore)
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
