// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
	"github.com/taibuivan/yomira-shelf/internal/platform/middleware"
	"github.com/taibuivan/yomira-shelf/internal/users/auth"
)

func TestHandler_SessionLifecycle(t *testing.T) {
	f := newAuthFixture(t)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(f.tokens))
	router.Mount("/auth", auth.NewHandler(f.service).Routes())

	send := func(method, path, body string, modify func(*http.Request)) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		if modify != nil {
			modify(request)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := send(http.MethodPost, "/auth/signup", `{"email": "reader@yomira.app", "password": "password1", "display_name": "Reader"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.NotContains(t, recorder.Body.String(), "password")

	recorder = send(http.MethodPost, "/auth/login", `{"email": "reader@yomira.app", "password": "nope-nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = send(http.MethodPost, "/auth/login", `{"email": "reader@yomira.app", "password": "password1"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &login))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.RefreshTokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	bearer := func(request *http.Request) {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+login.Data.AccessToken)
	}

	recorder = send(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = send(http.MethodGet, "/auth/me", "", bearer)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"display_name":"Reader"`)

	recorder = send(http.MethodPost, "/auth/refresh", "", func(request *http.Request) {
		request.AddCookie(cookies[0])
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	rotated := recorder.Result().Cookies()[0]
	assert.NotEqual(t, cookies[0].Value, rotated.Value)

	recorder = send(http.MethodPost, "/auth/logout", "", func(request *http.Request) {
		bearer(request)
		request.AddCookie(rotated)
	})
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, 0, f.sessions.Len())
}
