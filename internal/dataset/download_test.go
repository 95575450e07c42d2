package dataset

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Fetch(t *testing.T) {
	t.Run("downloads when absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("archive-bytes")) //nolint:errcheck
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "StormData.csv.bz2")
		d := NewDownloader(5*time.Second, slog.Default())

		err := d.Fetch(context.Background(), srv.URL, dest)
		require.NoError(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "archive-bytes", string(data))
	})

	t.Run("skips existing file", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits++
			w.Write([]byte("fresh")) //nolint:errcheck
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "StormData.csv.bz2")
		require.NoError(t, os.WriteFile(dest, []byte("cached"), 0o644))

		d := NewDownloader(5*time.Second, slog.Default())
		err := d.Fetch(context.Background(), srv.URL, dest)
		require.NoError(t, err)

		assert.Zero(t, hits)
		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "cached", string(data))
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "StormData.csv.bz2")
		d := NewDownloader(5*time.Second, slog.Default())

		err := d.Fetch(context.Background(), srv.URL, dest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
		assert.NoFileExists(t, dest)
	})

	t.Run("unreachable host is an error", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "StormData.csv.bz2")
		d := NewDownloader(time.Second, slog.Default())

		err := d.Fetch(context.Background(), "http://127.0.0.1:1/archive", dest)
		require.Error(t, err)
	})
}
