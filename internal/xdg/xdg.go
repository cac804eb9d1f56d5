// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package xdg provides XDG Base Directory paths for the marketplace tools.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "aurras-marketplace"

// ConfigDir returns the XDG config directory for the marketplace tools.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigFile returns the config file used when none is given.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
