package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "abc-photo.png", strings.NewReader("data"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc-photo.png", url)

	b, err := os.ReadFile(filepath.Join(dir, "abc-photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))
}

func TestLocalStore_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "../../etc/evil.png", strings.NewReader("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/evil.png", url)
	assert.FileExists(t, filepath.Join(dir, "evil.png"))
}

func TestLocalStore_CancelledContext(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, "a.png", strings.NewReader("x"), "image/png")
	assert.Error(t, err)
}

func TestLocalStore_URLIsFetchable(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	u, err := s.Put(context.Background(), "abc-my photo#1?.png", strings.NewReader("data"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc-my%20photo%231%3F.png", u)

	srv := httptest.NewServer(http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir))))
	defer srv.Close()

	resp, err := http.Get(srv.URL + u)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))
}

func TestPublicPath(t *testing.T) {
	assert.Equal(t, "a/b%3Fc.png", publicPath("a/b?c.png"))
	assert.Equal(t, "plain-name_1.png", publicPath("plain-name_1.png"))
}
