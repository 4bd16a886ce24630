// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the blog post HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from .env and environment variables.
//  3. Start the server instance (store, migrations, handlers, listener).
//  4. Wait for a signal, then shut down gracefully.
//
// No business logic lives here. All wiring happens in internal/app.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/blogapi/internal/app"
	"github.com/taibuivan/blogapi/internal/platform/config"
	"github.com/taibuivan/blogapi/internal/platform/constants"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
	)

	// ── 3. Server ─────────────────────────────────────────────────────────
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	instance, err := app.Start(startupCtx, cfg, log)
	startupCancel()
	must(log, err, "start server")

	// ── 4. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	exitCode := 0
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err, ok := <-instance.Done():
		if ok {
			log.Error("server_failed", slog.Any("error", err))
			exitCode = 1
		}
	}

	log.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	if err := instance.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		exitCode = 1
	}

	if exitCode != 0 {
		shutdownCancel()
		os.Exit(exitCode)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
