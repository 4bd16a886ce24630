// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package badger opens the embedded Badger key-value store used by the
// badger post store, and bridges Badger's internal logging to slog.
package badger

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Open opens (or creates) a Badger database at path.
//
// An empty path opens an in-memory database, which is what tests use.
func Open(path string, logger *slog.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(&slogAdapter{logger: logger.With(slog.String("component", "badger"))}).
		WithNumVersionsToKeep(1)

	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: failed to open %q: %w", path, err)
	}

	logger.Info("badger_store_opened",
		slog.String("path", path),
		slog.Bool("in_memory", path == ""),
	)
	return db, nil
}

// Ping reports whether the database is still open.
func Ping(db *badger.DB) error {
	if db.IsClosed() {
		return fmt.Errorf("badger: database is closed")
	}
	return nil
}

// slogAdapter implements badger.Logger on top of slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Errorf(format string, args ...any) {
	a.logger.Error(message(format, args))
}

func (a *slogAdapter) Warningf(format string, args ...any) {
	a.logger.Warn(message(format, args))
}

func (a *slogAdapter) Infof(format string, args ...any) {
	a.logger.Debug(message(format, args))
}

func (a *slogAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(message(format, args))
}

func message(format string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
