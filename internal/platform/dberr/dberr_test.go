// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no rows", pgx.ErrNoRows, apperr.CodeNotFound, http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict, http.StatusConflict},
		{"foreign key violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeNotFound, http.StatusNotFound},
		{"malformed uuid", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, apperr.CodeNotFound, http.StatusNotFound},
		{"wrapped malformed uuid", fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02"}), apperr.CodeNotFound, http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, apperr.CodePersistence, http.StatusInternalServerError},
		{"anything else", errors.New("connection reset"), apperr.CodePersistence, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := apperr.As(dberr.Wrap(tc.err, "Manga", "get_manga_by_id"))
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.HTTPStatus)
		})
	}
}

func TestWrap_NotFoundNamesResource(t *testing.T) {
	err := dberr.Wrap(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, "Collection", "get_collection")
	assert.Equal(t, "Collection not found", err.Error())
}

func TestWrap_PassesThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Manga", "noop"))

	conflict := apperr.VersionConflict("Manga")
	assert.Same(t, conflict, dberr.Wrap(conflict, "Manga", "save_manga"))
}

func TestWrap_KeepsCauseForLogs(t *testing.T) {
	cause := errors.New("connection reset")
	err := dberr.Wrap(cause, "Manga", "list_manga")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, apperr.As(err).Cause.Error(), "list_manga")
}
