// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity for NOT_FOUND messages; action tags the cause for logs.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(resource)
		case pgerrcode.InvalidTextRepresentation:
			// A malformed UUID cannot name a stored row.
			return apperr.NotFound(resource)
		}
	}

	// 3. Deadlines are still store failures, but keep the context error in the chain.
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Persistence(fmt.Errorf("%s: store timeout: %w", action, err))
	}

	return apperr.Persistence(fmt.Errorf("%s: %w", action, err))
}
