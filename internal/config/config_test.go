package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Contains(t, cfg.SourceURL, "StormData.csv.bz2")
	assert.Equal(t, "StormData.csv.bz2", cfg.ArchiveFile)
	assert.Equal(t, "storm_snapshot.db", cfg.SnapshotFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, 5*time.Minute, cfg.DownloadTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORM_DATA_DIR", "/tmp/storm")
	t.Setenv("STORM_LOG_LEVEL", "debug")
	t.Setenv("STORM_LOG_FORMAT", "text")
	t.Setenv("STORM_PUSHGATEWAY_URL", "http://pushgw:9091")
	t.Setenv("STORM_DOWNLOAD_TIMEOUT", "30s")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/storm", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "http://pushgw:9091", cfg.PushgatewayURL)
	assert.Equal(t, 30*time.Second, cfg.DownloadTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stormreport.yaml")
	content := []byte("data_dir: /var/lib/storm\nlog_format: text\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/storm", cfg.DataDir)
	assert.Equal(t, "text", cfg.LogFormat)
	// Untouched keys keep their defaults.
	assert.Equal(t, "StormData.csv.bz2", cfg.ArchiveFile)
}

func TestLoad_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("STORM_DATA_DIR", "/from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--data-dir", "/from-flag"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "/from-flag", cfg.DataDir)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("STORM_DATA_DIR", "/from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "ignored-default", "")

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "/from-env", cfg.DataDir)
}

func TestLoad_InvalidDownloadTimeout(t *testing.T) {
	t.Setenv("STORM_DOWNLOAD_TIMEOUT", "-1s")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download_timeout")
}

func TestLoad_MissingSourceURL(t *testing.T) {
	t.Setenv("STORM_SOURCE_URL", "")

	// An empty env var still counts as set and blanks the default.
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_url")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/stormreport.yaml", nil)
	require.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data", ArchiveFile: "a.csv.bz2", SnapshotFile: "s.db"}

	assert.Equal(t, filepath.Join("/data", "a.csv.bz2"), cfg.ArchivePath())
	assert.Equal(t, filepath.Join("/data", "s.db"), cfg.SnapshotPath())
}
