// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors, for every supported post store.
package dberr

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/blogapi/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried post doesn't exist.
	ErrNotFound = apperr.NotFound("Post")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// action names the store operation (e.g. "get_post") and ends up in the
// cause message for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.As(err) != nil {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, mongo.ErrNoDocuments) ||
		errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}

	// Everything else, timeouts and network failures included, is a generic 500.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
