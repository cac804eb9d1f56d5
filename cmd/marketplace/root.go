// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/aurras/marketplace/internal/config"
	"github.com/aurras/marketplace/internal/discovery"
	"github.com/aurras/marketplace/internal/logging"
	"github.com/aurras/marketplace/internal/observability"
	"github.com/aurras/marketplace/internal/xdg"
	"github.com/aurras/marketplace/pkg/errutil"
)

const serviceName = "marketplace"

// NewRootCmd creates the root command for the marketplace CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marketplace",
		Short: "Discover and validate Aurras marketplace plugins",
		Long: `marketplace scans the marketplace data directory for plugin folders,
validates each manifest for data integrity and schema conformance, and
prints catalog views built from the accepted plugins.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file path (default $XDG_CONFIG_HOME/aurras-marketplace/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}

// app is the per-invocation state shared by subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// newApp loads configuration and sets up logging and metrics for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	a := &app{
		cfg:    cfg,
		logger: logging.Setup(serviceName, version, cfg.LogFormat, level, cmd.ErrOrStderr()),
	}
	if cfg.MetricsTextfile != "" {
		a.registry = prometheus.NewRegistry()
		a.metrics = observability.NewMetrics(a.registry)
	}
	return a, nil
}

// configPath returns the --config value, or the XDG default file when it exists.
func configPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", oops.Code("CONFIG_INVALID").Wrap(err)
	}
	if path != "" {
		return path, nil
	}

	def := xdg.DefaultConfigFile()
	if _, err := os.Stat(def); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", oops.Code("CONFIG_LOAD_FAILED").With("path", def).Wrap(err)
	}
	return def, nil
}

// catalog returns a discovery catalog configured from the loaded config.
func (a *app) catalog() *discovery.Catalog {
	return discovery.NewDir(a.cfg.DataDir,
		discovery.WithLogger(a.logger),
		discovery.WithManifestName(a.cfg.ManifestName),
		discovery.WithConcurrency(a.cfg.Concurrency),
		discovery.WithLocale(a.cfg.Locale),
		discovery.WithMetrics(a.metrics),
	)
}

// flush writes collected metrics when a textfile is configured. Failures are
// logged and do not change the command result.
func (a *app) flush() {
	if a.registry == nil {
		return
	}
	if err := observability.WriteTextfile(a.cfg.MetricsTextfile, a.registry); err != nil {
		errutil.LogError(a.logger, "failed to write metrics", err)
	}
}
