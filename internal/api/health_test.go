// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blogapi/internal/api"
	"github.com/taibuivan/blogapi/internal/blog"
	badgerstore "github.com/taibuivan/blogapi/internal/platform/badger"
	"github.com/taibuivan/blogapi/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, check func(context.Context) error) *api.Server {
	t.Helper()

	db, err := badgerstore.Open("", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := blog.NewBadgerRepository(db)
	if check == nil {
		check = repo.Ping
	}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  "badger",
		CheckStore: check,
	}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "development"}, discardLogger(), api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Posts:     blog.NewHandler(blog.NewService(repo, discardLogger())),
	})
}

func get(t *testing.T, server *api.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

/*
TestHealth_Liveness always answers ok.
*/
func TestHealth_Liveness(t *testing.T) {
	recorder := get(t, newTestServer(t, nil), "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

/*
TestHealth_Readiness reports ready while the store answers and degraded when it does not.
*/
func TestHealth_Readiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		recorder := get(t, newTestServer(t, nil), "/ready")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"status":"ready","checks":[{"name":"badger","ok":true}]}`, recorder.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		failing := func(context.Context) error { return errors.New("connection refused") }
		recorder := get(t, newTestServer(t, failing), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.JSONEq(t, `{"status":"degraded","checks":[{"name":"badger","ok":false,"error":"unreachable"}]}`, recorder.Body.String())
	})
}

/*
TestServer_Routes mounts posts at the root and stamps a request id.
*/
func TestServer_Routes(t *testing.T) {
	server := newTestServer(t, nil)

	recorder := get(t, server, "/posts")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"posts":[]}`, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = get(t, server, "/nope")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
