package cache_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routeview/internal/cache"
)

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestEnsureData(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/physical/ne_50m_coastline.zip" {
			http.NotFound(w, r)
			return
		}
		w.Write(zipOf(t, map[string]string{
			"ne_50m_coastline/ne_50m_coastline.shp": "shp",
			"ne_50m_coastline/ne_50m_coastline.dbf": "dbf",
			"ne_50m_coastline/.DS_Store":            "junk",
		}))
	}))
	defer srv.Close()

	dir := t.TempDir()
	m, err := cache.NewManager(dir, cache.WithBaseURL(srv.URL+"/"), cache.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	require.Len(t, m.Missing(), len(cache.DataFiles))

	require.NoError(t, m.EnsureData(t.Context()), "failed layers are skipped")
	assert.Equal(t, int32(len(cache.DataFiles)), requests.Load())

	assert.FileExists(t, m.GetDataPath("ne_50m_coastline"))
	assert.FileExists(t, filepath.Join(dir, "ne_50m_coastline.dbf"))
	assert.NoFileExists(t, filepath.Join(dir, ".DS_Store"))
	assert.Len(t, m.Missing(), len(cache.DataFiles)-1)

	// cached layers are not fetched again
	require.NoError(t, m.EnsureData(t.Context()))
	assert.Equal(t, int32(2*len(cache.DataFiles)-1), requests.Load())
}

func TestEnsureData_Cancelled(t *testing.T) {
	m, err := cache.NewManager(t.TempDir(), cache.WithBaseURL("http://127.0.0.1:1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.ErrorIs(t, m.EnsureData(ctx), context.Canceled)
}

func TestNewManager_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	m, err := cache.NewManager(dir)
	require.NoError(t, err)

	info, err := os.Stat(m.GetCacheDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
