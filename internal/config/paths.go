// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "PKGCENTER_CONFIG"

// GetXDGConfigHome returns XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetConfigPath returns the configuration file path.
// Priority: PKGCENTER_CONFIG > $XDG_CONFIG_HOME/pkgcenter/config.toml.
func GetConfigPath() string {
	return GetConfigPathWithEnv(os.Getenv(EnvConfigPath), os.Getenv("XDG_CONFIG_HOME"))
}

// GetConfigPathWithEnv resolves the configuration file path from explicit values for testing.
func GetConfigPathWithEnv(override, xdgConfigHome string) string {
	if override != "" {
		return override
	}

	configHome := GetXDGConfigHomeWithEnv(xdgConfigHome)
	if configHome == "" {
		return ""
	}

	return filepath.Join(configHome, "pkgcenter", "config.toml")
}
