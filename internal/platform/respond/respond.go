// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Success payloads are written as-is: the post resource has a fixed wire
// shape and is not wrapped in an envelope. Errors always go through [Error],
// which is the single place where the error taxonomy becomes a status code.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/blogapi/internal/platform/apperr"
	"github.com/taibuivan/blogapi/internal/platform/ctxutil"
)

// ErrorEnvelope is the JSON body of every error response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
//
// Unknown errors are treated as internal failures: the full error is logged
// with the request id, the client only sees a generic message.
//
// Once the request deadline has passed, the timeout middleware owns the
// status line, so Error only logs.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	if ctx := request.Context(); errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "api_request_deadline_exceeded",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", err),
		)
		return
	}

	appError := apperr.Classify(err)
	if appError == nil {
		appError = apperr.Internal(nil)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctx := request.Context()
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
