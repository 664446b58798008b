// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/parse.go
// Summary: Line-oriented, tolerant parser for desktop entry files.
// Usage: ParseEntry is a pure function; CatalogBuilder calls it per file.

package catalog

import (
	"path/filepath"
	"strings"
)

const mainSection = "Desktop Entry"

// ParseEntry parses one desktop entry file into a normalized AppEntry.
// Only the [Desktop Entry] section is consulted. Lines without '=' are
// skipped and unknown keys are ignored; one bad line never rejects the file.
// Rejections are reported as *ParseError.
func ParseEntry(path string, raw []byte) (AppEntry, error) {
	entry := AppEntry{
		ID:   entryID(path),
		Path: path,
	}

	section := ""
	sawMain := false
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			if section == mainSection {
				sawMain = true
			}
			continue
		}
		if section != mainSection {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			entry.Name = value
		case "Exec":
			entry.Exec = stripFieldCodes(value)
		case "Icon":
			entry.IconName = value
		case "Terminal":
			entry.TerminalRequired = parseBool(value)
		case "NoDisplay", "Hidden":
			if parseBool(value) {
				return AppEntry{}, &ParseError{Path: path, Kind: ErrSuppressed}
			}
		}
	}

	if !sawMain {
		return AppEntry{}, &ParseError{Path: path, Kind: ErrMalformed}
	}
	if entry.Name == "" {
		return AppEntry{}, &ParseError{Path: path, Kind: ErrMissingField, Field: "Name"}
	}
	if entry.Exec == "" {
		return AppEntry{}, &ParseError{Path: path, Kind: ErrMissingField, Field: "Exec"}
	}
	return entry, nil
}

// entryID derives the catalog identifier from the source filename.
func entryID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".desktop")
}

// parseBool follows the desktop entry convention: true and 1 are truthy.
func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1":
		return true
	}
	return false
}

// stripFieldCodes removes %-prefixed placeholder tokens from an Exec value
// and rejoins the remaining command and arguments. This program never passes
// file or URL arguments, so the placeholders carry no information.
func stripFieldCodes(exec string) string {
	var kept []string
	for _, tok := range SplitExec(exec) {
		if strings.HasPrefix(tok, "%") {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// SplitExec splits an Exec value into argv tokens, honoring double quotes
// and backslash escapes inside quoted sections. Malformed quoting degrades
// to whitespace splitting of the remainder rather than failing.
func SplitExec(s string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		active  bool
	)
	flush := func() {
		if active {
			args = append(args, current.String())
			current.Reset()
			active = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quoted:
			if c == '\\' && i+1 < len(s) {
				i++
				current.WriteByte(s[i])
			} else if c == '"' {
				quoted = false
			} else {
				current.WriteByte(c)
			}
		case c == '"':
			quoted = true
			active = true
		case c == ' ' || c == '\t':
			flush()
		default:
			current.WriteByte(c)
			active = true
		}
	}
	flush()
	return args
}
