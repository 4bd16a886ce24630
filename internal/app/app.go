// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app owns the server lifecycle: it opens the configured post store,
wires the blog domain into the HTTP server and hands back an [Instance]
the caller stops explicitly.

Startup Sequence:

 1. Open the post store selected by STORE_DRIVER (migrations first for postgres).
 2. Wire the repository, service and handlers.
 3. Bind the listener and serve in the background.

No state is global; two instances can run side by side in one process.
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/taibuivan/blogapi/internal/api"
	"github.com/taibuivan/blogapi/internal/blog"
	badgerstore "github.com/taibuivan/blogapi/internal/platform/badger"
	"github.com/taibuivan/blogapi/internal/platform/config"
	"github.com/taibuivan/blogapi/internal/platform/constants"
	"github.com/taibuivan/blogapi/internal/platform/migration"
	mongostore "github.com/taibuivan/blogapi/internal/platform/mongo"
	pgstore "github.com/taibuivan/blogapi/internal/platform/postgres"
)

// Instance is a running server. Stop it with [Instance.Shutdown].
type Instance struct {
	server     *api.Server
	listener   net.Listener
	closeStore func(ctx context.Context) error
	cancel     context.CancelFunc
	serveErr   chan error
	logger     *slog.Logger
}

// Start opens the store, binds the port and begins serving.
//
// ctx bounds startup only (store connection, migrations); the returned
// instance keeps running until Shutdown is called.
func Start(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Instance, error) {
	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", ":"+cfg.ServerPort)
	if err != nil {
		_ = closeStore(context.Background())
		return nil, fmt.Errorf("app: failed to bind port %s: %w", cfg.ServerPort, err)
	}

	// Background middleware (rate limiter janitor) lives as long as the instance.
	runCtx, cancel := context.WithCancel(context.Background())

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  cfg.StoreDriver,
		CheckStore: repo.Ping,
	}, logger)

	posts := blog.NewHandler(blog.NewService(repo, logger))

	server := api.NewServer(runCtx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Posts:     posts,
	})

	instance := &Instance{
		server:     server,
		listener:   listener,
		closeStore: closeStore,
		cancel:     cancel,
		serveErr:   make(chan error, 1),
		logger:     logger,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			instance.serveErr <- err
		}
		close(instance.serveErr)
	}()

	logger.Info("server_started",
		slog.String("addr", instance.Addr()),
		slog.String("store", cfg.StoreDriver),
		slog.String("environment", cfg.Environment),
	)

	return instance, nil
}

// Addr is the bound address, useful when the configured port is "0".
func (instance *Instance) Addr() string {
	return instance.listener.Addr().String()
}

// Done delivers a serve failure, or is closed once the server stops.
func (instance *Instance) Done() <-chan error {
	return instance.serveErr
}

// Shutdown drains in-flight requests, then releases the store.
// The store is closed even when draining times out.
func (instance *Instance) Shutdown(ctx context.Context) error {
	instance.logger.Info("server_stopping")

	serverErr := instance.server.Shutdown(ctx)
	instance.cancel()

	storeErr := instance.closeStore(ctx)

	if err := errors.Join(serverErr, storeErr); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}

	instance.logger.Info("server_stopped")
	return nil
}

// openStore connects the backend named by cfg.StoreDriver and returns its
// repository with the matching release function.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (blog.Repository, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case constants.StoreMongo:
		client, err := mongostore.NewClient(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		repo := blog.NewMongoRepository(client.Database(cfg.DatabaseName))
		return repo, func(ctx context.Context) error {
			return mongostore.Disconnect(ctx, client)
		}, nil

	case constants.StorePostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return nil, nil, err
		}
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return blog.NewPostgresRepository(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil

	case constants.StoreBadger:
		db, err := badgerstore.Open(cfg.BadgerPath, logger)
		if err != nil {
			return nil, nil, err
		}
		return blog.NewBadgerRepository(db), func(context.Context) error {
			return db.Close()
		}, nil

	default:
		return nil, nil, fmt.Errorf("app: unknown store driver %q", cfg.StoreDriver)
	}
}
