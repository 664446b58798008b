// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/entry.go
// Summary: Defines the normalized application entry and parse rejection types.

package catalog

import "fmt"

// AppEntry is a normalized application launcher discovered from a desktop
// entry file. ID is unique within a Catalog.
type AppEntry struct {
	// ID is derived from the source filename without the .desktop extension.
	ID string

	// Name is the human-readable name shown in the grid.
	Name string

	// Exec is the launch command with field codes stripped.
	Exec string

	// IconName is the raw Icon= value from the entry file (theme name or
	// absolute path). May be empty.
	IconName string

	// Icon is the resolved icon, filled in by the resolver chain.
	Icon Icon

	// TerminalRequired marks entries that need a terminal emulator wrapper.
	TerminalRequired bool

	// Path is the source file the entry was parsed from.
	Path string
}

// Icon is the resolved visual for an entry: either a glyph/emoji string or a
// theme image path. Path takes precedence when both are set.
type Icon struct {
	Glyph string
	Path  string
}

// ParseErrorKind discriminates why an entry file was rejected.
type ParseErrorKind int

const (
	// ErrMalformed covers files that are not desktop entries at all.
	ErrMalformed ParseErrorKind = iota

	// ErrMissingField marks entries without a required key (Name or Exec).
	ErrMissingField

	// ErrSuppressed marks entries hidden on purpose (NoDisplay or Hidden).
	// Not a broken file; discovery logs treat it as informational.
	ErrSuppressed
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrMalformed:
		return "malformed"
	case ErrMissingField:
		return "missing-field"
	case ErrSuppressed:
		return "suppressed"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseError is the non-fatal rejection reason for one entry file.
type ParseError struct {
	Path  string
	Kind  ParseErrorKind
	Field string // set for ErrMissingField
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}
