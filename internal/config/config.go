// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the optional, read-only pkgcenter configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/janderssonse/pkgcenter/internal/adapters/platform"
	"github.com/janderssonse/pkgcenter/internal/adapters/yay"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the structure of config.toml.
//
//	[tools]
//	search = "yay"
//	database = "pacman"
//	sudo = "sudo"
//
//	[runner]
//	chunk_size = 4096
//	dry_run = false
type Config struct {
	Tools  yay.Tools `toml:"tools"`
	Runner Runner    `toml:"runner"`
}

// Runner holds process runner settings.
type Runner struct {
	ChunkSize int  `toml:"chunk_size"`
	DryRun    bool `toml:"dry_run"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tools:  yay.DefaultTools(),
		Runner: Runner{ChunkSize: platform.DefaultChunkSize},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// file is never written.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.fillDefaults()

	return cfg, nil
}

// fillDefaults restores defaults for keys set to empty values.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Tools.Search == "" {
		c.Tools.Search = defaults.Tools.Search
	}

	if c.Tools.Database == "" {
		c.Tools.Database = defaults.Tools.Database
	}

	if c.Tools.Sudo == "" {
		c.Tools.Sudo = defaults.Tools.Sudo
	}

	if c.Runner.ChunkSize <= 0 {
		c.Runner.ChunkSize = defaults.Runner.ChunkSize
	}
}
