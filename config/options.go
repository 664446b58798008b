// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/options.go
// Summary: Runtime options with CYBERDESK_* environment defaults; CLI flags
// override these in the command layer.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Options are the runtime knobs. Environment variables provide defaults,
// flags have the final word.
type Options struct {
	// Columns is the grid width in cells.
	Columns int `env:"CYBERDESK_COLUMNS" envDefault:"4"`

	// GlyphsOnly disables theme image lookup so every icon renders as a
	// glyph or emoji.
	GlyphsOnly bool `env:"CYBERDESK_GLYPHS_ONLY"`

	// NoLabels hides the text label under each icon.
	NoLabels bool `env:"CYBERDESK_NO_LABELS"`

	// Verbose enables parse and placement decision logging.
	Verbose bool `env:"CYBERDESK_VERBOSE"`

	// ConfigDir overrides the configuration directory.
	ConfigDir string `env:"CYBERDESK_CONFIG_DIR"`
}

// FromEnv parses options from the environment.
func FromEnv() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("parse environment: %w", err)
	}
	if opts.Columns < 1 {
		opts.Columns = 1
	}
	return opts, nil
}
