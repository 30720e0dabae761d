package preview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerServesOutputAndHealth(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "index.html"), []byte("<h1>hi</h1>"), 0o644))

	srv := NewServer("127.0.0.1:0", out, nil, func(context.Context) error { return nil })
	require.NoError(t, srv.rebuild(context.Background()))

	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthReportsBuildFailure(t *testing.T) {
	srv := NewServer("127.0.0.1:0", t.TempDir(), nil, func(context.Context) error {
		return errors.New("broken front matter")
	})
	require.Error(t, srv.rebuild(context.Background()))

	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealthBeforeFirstGoodBuild(t *testing.T) {
	srv := NewServer("127.0.0.1:0", t.TempDir(), nil, func(context.Context) error { return nil })

	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestIgnoredEvents(t *testing.T) {
	assert.True(t, isIgnoredEvent(fsnotify.Event{Name: "content/.post.md.swp", Op: fsnotify.Write}))
	assert.True(t, isIgnoredEvent(fsnotify.Event{Name: "content/post.md~", Op: fsnotify.Write}))
	assert.True(t, isIgnoredEvent(fsnotify.Event{Name: "content/post.md", Op: fsnotify.Chmod}))
	assert.False(t, isIgnoredEvent(fsnotify.Event{Name: "content/post.md", Op: fsnotify.Write}))
}
