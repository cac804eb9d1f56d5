// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package config loads marketplace build settings from defaults, an
// optional YAML file and command-line flags, in that order of precedence.
package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/aurras/marketplace/internal/logging"
)

// Default values for configuration keys.
const (
	DefaultDataDir      = "src/data/marketplace"
	DefaultManifestName = "manifest.json"
	DefaultLogFormat    = "text"
	DefaultLogLevel     = "info"
	DefaultLocale       = "en"
	DefaultConcurrency  = 1
)

// Config holds marketplace build settings. Keys match flag names.
type Config struct {
	DataDir         string `koanf:"data-dir"`
	ManifestName    string `koanf:"manifest-name"`
	LogFormat       string `koanf:"log-format"`
	LogLevel        string `koanf:"log-level"`
	Locale          string `koanf:"locale"`
	Concurrency     int    `koanf:"concurrency"`
	MetricsTextfile string `koanf:"metrics-textfile"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:      DefaultDataDir,
		ManifestName: DefaultManifestName,
		LogFormat:    DefaultLogFormat,
		LogLevel:     DefaultLogLevel,
		Locale:       DefaultLocale,
		Concurrency:  DefaultConcurrency,
	}
}

// RegisterFlags adds a flag for every configuration key to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("data-dir", d.DataDir, "marketplace data directory containing one folder per plugin")
	fs.String("manifest-name", d.ManifestName, "manifest file name inside each plugin folder")
	fs.String("log-format", d.LogFormat, "log format (json or text)")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("locale", d.Locale, "BCP 47 locale used to sort plugins by name")
	fs.Int("concurrency", d.Concurrency, "number of manifests validated in parallel")
	fs.String("metrics-textfile", d.MetricsTextfile, "write Prometheus metrics to this file after the run (empty = disabled)")
}

// Load builds a Config. path is an optional YAML file; flags, if non-nil,
// override it. Unchanged flags only fill keys the file does not set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
		}
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return oops.Code("CONFIG_INVALID").Errorf("data-dir is required")
	}
	if c.ManifestName == "" || c.ManifestName != filepath.Base(c.ManifestName) {
		return oops.Code("CONFIG_INVALID").
			With("manifest-name", c.ManifestName).
			Errorf("manifest-name must be a plain file name, got %q", c.ManifestName)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return oops.Code("CONFIG_INVALID").Errorf("log-level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Concurrency < 1 {
		return oops.Code("CONFIG_INVALID").Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
