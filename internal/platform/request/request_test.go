// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/yomira-shelf/internal/platform/request"
	"github.com/taibuivan/yomira-shelf/internal/platform/sec"
)

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Berserk"}`))
	require.NoError(t, requestutil.DecodeJSON(request, &target))
	assert.Equal(t, "Berserk", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"typo"}`))
	err := requestutil.DecodeJSON(request, &target)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestIntParam(t *testing.T) {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add("number", "7")
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))

	number, err := requestutil.IntParam(request, "number")
	require.NoError(t, err)
	assert.Equal(t, 7, number)

	_, err = requestutil.IntParam(request, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestRequiredUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := requestutil.RequiredUserID(request)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "owner-1"})
	userID, err := requestutil.RequiredUserID(request.WithContext(ctx))
	require.NoError(t, err)
	assert.Equal(t, "owner-1", userID)
}
