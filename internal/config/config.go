// Package config loads tool settings from defaults, an optional YAML file,
// STORM_-prefixed environment variables, and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the config file looked up in the working directory when
// no explicit --config path is given.
const ConfigFileName = "stormreport.yaml"

// defaultSourceURL is the compressed Storm Events archive (1950-2011).
const defaultSourceURL = "https://d396qusza40orc.cloudfront.net/repdata%2Fdata%2FStormData.csv.bz2"

// Config holds all tool settings.
type Config struct {
	DataDir      string `koanf:"data_dir"`
	SourceURL    string `koanf:"source_url"`
	ArchiveFile  string `koanf:"archive_file"`
	SnapshotFile string `koanf:"snapshot_file"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// PushgatewayURL enables a metrics push at end of run when non-empty.
	PushgatewayURL string `koanf:"pushgateway_url"`

	DownloadTimeout time.Duration `koanf:"download_timeout"`
}

// Load builds a Config. cfgFile may be empty, in which case stormreport.yaml
// in the working directory is used if present. flags may be nil; only flags
// the user explicitly set override earlier layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":         "data",
		"source_url":       defaultSourceURL,
		"archive_file":     "StormData.csv.bz2",
		"snapshot_file":    "storm_snapshot.db",
		"log_level":        "info",
		"log_format":       "json",
		"pushgateway_url":  "",
		"download_timeout": "5m",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			cfgFile = ConfigFileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// STORM_DATA_DIR -> data_dir
	if err := k.Load(env.Provider("STORM_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STORM_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SourceURL == "" {
		return errors.New("source_url is required")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.ArchiveFile == "" {
		return errors.New("archive_file is required")
	}
	if c.SnapshotFile == "" {
		return errors.New("snapshot_file is required")
	}
	if c.DownloadTimeout <= 0 {
		return errors.New("download_timeout must be positive")
	}
	return nil
}

// ArchivePath is the on-disk location of the raw compressed archive.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DataDir, c.ArchiveFile)
}

// SnapshotPath is the on-disk location of the SQLite snapshot cache.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, c.SnapshotFile)
}
