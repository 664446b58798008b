// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for cyberdesk configuration and state files.

package config

import (
	"os"
	"path/filepath"
)

// Root returns the cyberdesk configuration directory, normally
// ~/.config/cyberdesk. An explicit override wins.
func Root(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cyberdesk"), nil
}

// EnsureRoot creates the configuration directory if needed.
func EnsureRoot(root string) error {
	return os.MkdirAll(root, 0755)
}

// LayoutPath is the persisted grid layout file.
func LayoutPath(root string) string {
	return filepath.Join(root, "layout.json")
}

// OverridesPath is the user-editable icon override file.
func OverridesPath(root string) string {
	return filepath.Join(root, "icons.json")
}

// HistoryPath is the launch history database.
func HistoryPath(root string) string {
	return filepath.Join(root, "history.db")
}

// LogPath is where interactive sessions redirect the log, keeping log
// output off the tcell screen.
func LogPath(root string) string {
	return filepath.Join(root, "cyberdesk.log")
}

// ApplicationDirs returns the desktop entry discovery directories in
// priority order: system-wide first, user-specific last so user entries win
// identifier collisions.
func ApplicationDirs() []string {
	dirs := []string{"/usr/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local/share/applications"))
	}
	return dirs
}
