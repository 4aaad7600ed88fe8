// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"

	"github.com/davetashner/wsinfo/internal/testable"
)

// GlobalConfigDir returns the directory for global wsinfo configuration.
// It uses $XDG_CONFIG_HOME/wsinfo if set, otherwise ~/.config/wsinfo.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wsinfo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wsinfo")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal(fsys testable.FileSystem) (*Config, error) {
	return loadFile(fsys, GlobalConfigPath())
}
