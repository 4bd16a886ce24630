// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mongo provides the managed MongoDB client behind the default post store.

Core Responsibilities:

  - Connection: parses the URI, tunes the driver pool and verifies reachability
    before the server starts accepting traffic.
  - Health: exposes [Ping] for the readiness probe.
  - Teardown: [Disconnect] is called by the server lifecycle on shutdown.
*/
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/taibuivan/blogapi/internal/platform/constants"
)

// Driver pool settings.
const (
	maxPoolSize     = 20
	minPoolSize     = 2
	maxConnIdleTime = 10 * time.Minute
	connectTimeout  = 5 * time.Second
	serverSelection = 5 * time.Second
)

// NewClient connects to MongoDB and returns a verified client.
//
// # Parameters
//   - ctx: Context for the initial connection and ping.
//   - uri: A mongodb:// or mongodb+srv:// connection string.
//   - logger: Structured logger for connection events.
func NewClient(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetAppName(constants.AppName).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetMaxConnIdleTime(maxConnIdleTime).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(serverSelection)

	if err := clientOptions.Validate(); err != nil {
		return nil, fmt.Errorf("mongo: invalid URI: %w", err)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo: failed to connect: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo_client_connected",
		slog.Any("hosts", clientOptions.Hosts),
		slog.Int("max_pool_size", maxPoolSize),
	)

	return client, nil
}

// Ping verifies that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, constants.PingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}
	return nil
}

// Disconnect closes every pooled connection.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: disconnect failed: %w", err)
	}
	return nil
}
