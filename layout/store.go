// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/store.go
// Summary: Loads and atomically saves the persisted layout document.
// Usage: The layout file is the only mutable state shared with concurrent
// instances, so every write goes through a temp file + rename.

package layout

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Store reads and writes the layout document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted document. A missing file yields an empty
// document; a corrupt one yields an empty document plus a logged
// diagnostic. Load never fails.
func (s *Store) Load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Layout: Failed to read %s: %v", s.path, err)
		}
		return NewDocument()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Layout: Corrupt layout file %s, starting empty: %v", s.path, err)
		return NewDocument()
	}
	if doc.Version != FormatVersion {
		log.Printf("Layout: Unknown layout version %d in %s, starting empty", doc.Version, s.path)
		return NewDocument()
	}
	return doc
}

// Save writes the document atomically: the content goes to a temp file in
// the same directory, is synced, and then renamed over the target. A reader
// observing the path mid-write sees either the old or the new content,
// never a partial file.
func (s *Store) Save(doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create layout directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	tmpPath := s.path + ".tmp"
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create temp layout: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp layout: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp layout: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp layout: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp layout: %w", err)
	}
	return nil
}
