// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate turns ozzo-validation results into [apperr.AppError] values.
//
// # Architecture
//
// Request DTOs declare their rules with ozzo-validation (a Validate method per
// DTO). The service layer runs them and hands the result to [Rules], which
// flattens nested field errors, orders them deterministically and picks the
// client-facing message. Handlers and stores never validate.
package validate

import (
	"errors"
	"slices"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/taibuivan/blogapi/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// requiredCodes are the ozzo error codes that mean "absent".
var requiredCodes = []string{
	validation.ErrRequired.Code(),
	validation.ErrNotNilRequired.Code(),
}

type fieldFailure struct {
	apperr.FieldError
	rank     int
	required bool
}

// Rules converts the error returned by an ozzo Validate call.
//
// order lists top-level JSON field names by precedence. The first failing
// field in that order decides the message: a missing field yields
// "Missing required field <name>", anything else "Validation failed".
// Fields not listed sort after the listed ones, alphabetically.
//
// A nil err returns nil. An ozzo internal error (a broken rule, not bad
// input) is reported as [apperr.Internal].
func Rules(err error, order ...string) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return apperr.Internal(internal.InternalError())
	}

	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		return apperr.ValidationError(err.Error())
	}

	failures := flatten(fieldErrors, "", -1, order)
	if len(failures) == 0 {
		return nil
	}

	sort.SliceStable(failures, func(i, j int) bool {
		if failures[i].rank != failures[j].rank {
			return failures[i].rank < failures[j].rank
		}
		return failures[i].Field < failures[j].Field
	})

	details := make([]apperr.FieldError, len(failures))
	for i, failure := range failures {
		details[i] = failure.FieldError
	}

	message := "Validation failed"
	if failures[0].required {
		message = "Missing required field " + failures[0].Field
	}

	return apperr.ValidationError(message, details...)
}

// Field builds a single-field validation error with a custom top-level message.
func Field(field, message string) *apperr.AppError {
	return apperr.ValidationError(message, apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

// flatten walks nested [validation.Errors] into dotted field paths.
func flatten(fieldErrors validation.Errors, prefix string, rank int, order []string) []fieldFailure {
	var failures []fieldFailure

	for name, err := range fieldErrors {
		if err == nil {
			continue
		}

		path := name
		fieldRank := rank
		if prefix != "" {
			path = prefix + "." + name
		} else {
			fieldRank = rankOf(name, order)
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			failures = append(failures, flatten(nested, path, fieldRank, order)...)
			continue
		}

		failure := fieldFailure{
			FieldError: apperr.FieldError{Field: path, Message: err.Error()},
			rank:       fieldRank,
		}

		var coded validation.Error
		if errors.As(err, &coded) {
			failure.required = slices.Contains(requiredCodes, coded.Code())
		}

		failures = append(failures, failure)
	}

	return failures
}

func rankOf(name string, order []string) int {
	if index := slices.Index(order, name); index >= 0 {
		return index
	}
	return len(order)
}
