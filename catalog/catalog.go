// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/catalog.go
// Summary: Scans application directories and builds the deduplicated,
// icon-resolved catalog.
// Usage: The desktop core calls Build on startup and on every rescan.

package catalog

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog is the ordered set of discovered applications. It is rebuilt
// wholesale on every discovery pass and never mutated in place.
type Catalog []AppEntry

// Diagnostic records a non-fatal discovery problem: an unreadable directory
// or a rejected entry file.
type Diagnostic struct {
	Path string
	Err  error
}

// Builder drives discovery. Directories are scanned in order with later
// directories winning identifier collisions, so callers list the system
// directory first and the user directory last.
type Builder struct {
	Dirs      []string
	Resolvers []IconResolver

	// Verbose enables per-file decision logging.
	Verbose bool
}

// Build scans every configured directory non-recursively, parses each
// *.desktop file, deduplicates by identifier, and runs icon resolution.
// Parse failures and unreadable directories are collected as diagnostics;
// one bad file never aborts discovery. Given identical directory contents
// the output is identical across runs.
func (b *Builder) Build() (Catalog, []Diagnostic) {
	var (
		order []string // identifiers in first-seen scan order
		byID  = make(map[string]AppEntry)
		diags []Diagnostic
	)

	for _, dir := range b.Dirs {
		names, err := listEntryFiles(dir)
		if err != nil {
			diags = append(diags, Diagnostic{Path: dir, Err: err})
			log.Printf("Catalog: Skipping unreadable directory %s: %v", dir, err)
			continue
		}

		for _, name := range names {
			path := filepath.Join(dir, name)
			raw, err := os.ReadFile(path)
			if err != nil {
				diags = append(diags, Diagnostic{Path: path, Err: err})
				continue
			}

			entry, err := ParseEntry(path, raw)
			if err != nil {
				diags = append(diags, Diagnostic{Path: path, Err: err})
				if b.Verbose {
					log.Printf("Catalog: Rejected %v", err)
				}
				continue
			}

			if _, seen := byID[entry.ID]; !seen {
				order = append(order, entry.ID)
			} else if b.Verbose {
				log.Printf("Catalog: %s overrides earlier entry for %q", path, entry.ID)
			}
			// Later directories win; within a directory filenames are
			// unique so no same-directory collision exists.
			byID[entry.ID] = entry
		}
	}

	cat := make(Catalog, 0, len(order))
	for _, id := range order {
		entry := byID[id]
		entry.Icon = resolveIcon(entry, b.Resolvers, b.Verbose)
		cat = append(cat, entry)
	}

	log.Printf("Catalog: Discovered %d apps (%d rejected or unreadable)", len(cat), len(diags))
	return cat, diags
}

// Lookup returns the entry with the given identifier.
func (c Catalog) Lookup(id string) (AppEntry, bool) {
	for _, entry := range c {
		if entry.ID == id {
			return entry, true
		}
	}
	return AppEntry{}, false
}

// IDs returns the identifiers in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, entry := range c {
		ids[i] = entry.ID
	}
	return ids
}

// listEntryFiles returns the sorted *.desktop filenames in dir.
func listEntryFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".desktop") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func resolveIcon(entry AppEntry, resolvers []IconResolver, verbose bool) Icon {
	for _, r := range resolvers {
		if icon, ok := r.Resolve(entry); ok {
			if verbose {
				log.Printf("Catalog: Icon for %q resolved by %s", entry.ID, r.Name())
			}
			return icon
		}
	}
	return Icon{Glyph: "?"}
}
