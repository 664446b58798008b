// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desk/desktop.go
// Summary: Application core owning the catalog and the layout document.
// Usage: The UI holds a Desktop, reads grid snapshots, and sends move and
// activate intents; launch results come back on the Results channel.

package desk

import (
	"fmt"
	"log"
	"sync"

	"github.com/framegrace/cyberdesk/catalog"
	"github.com/framegrace/cyberdesk/history"
	"github.com/framegrace/cyberdesk/launch"
	"github.com/framegrace/cyberdesk/layout"
)

// LaunchResult reports the outcome of one activation back to the UI.
// Launches is the total recorded launch count including this one, zero when
// history is disabled.
type LaunchResult struct {
	ID       string
	Name     string
	Outcome  launch.Outcome
	Launches int
}

// Config wires a Desktop together.
type Config struct {
	Dirs      []string
	Resolvers []catalog.IconResolver
	Store     *layout.Store
	Launcher  *launch.Launcher
	History   *history.Store // optional
	Columns   int
	Verbose   bool
}

// Desktop is the single owner of catalog and layout state. Discovery,
// planning, and layout mutation serialize on its mutex so the planner
// always reads a consistent snapshot; launching runs off-loop and only
// reports the spawn outcome.
type Desktop struct {
	cfg Config

	mu      sync.Mutex
	catalog catalog.Catalog
	doc     layout.Document
	diags   []catalog.Diagnostic

	results chan LaunchResult
}

// New builds the Desktop and runs the first discovery pass. It fails only
// when there is nothing at all to present: every discovery directory was
// unreadable and no prior layout exists.
func New(cfg Config) (*Desktop, error) {
	if cfg.Columns < 1 {
		cfg.Columns = 1
	}
	d := &Desktop{
		cfg:     cfg,
		doc:     cfg.Store.Load(),
		results: make(chan LaunchResult, 8),
	}
	d.rescanLocked()

	if len(d.catalog) == 0 && d.allDirsFailed() && len(d.doc.Positions) == 0 {
		return nil, fmt.Errorf("no readable application directory and no saved layout")
	}
	return d, nil
}

// allDirsFailed reports whether every discovery directory produced a
// directory-level diagnostic.
func (d *Desktop) allDirsFailed() bool {
	failed := make(map[string]bool)
	for _, diag := range d.diags {
		failed[diag.Path] = true
	}
	for _, dir := range d.cfg.Dirs {
		if !failed[dir] {
			return false
		}
	}
	return true
}

// Rescan rebuilds the catalog and reconciles the layout against it. The new
// snapshot replaces the old one wholesale.
func (d *Desktop) Rescan() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rescanLocked()
}

func (d *Desktop) rescanLocked() {
	builder := &catalog.Builder{
		Dirs:      d.cfg.Dirs,
		Resolvers: d.cfg.Resolvers,
		Verbose:   d.cfg.Verbose,
	}
	d.catalog, d.diags = builder.Build()
	d.doc = layout.Reconcile(d.doc, d.catalog)
}

// CurrentGrid returns a read-only placement snapshot for the renderer.
func (d *Desktop) CurrentGrid() layout.PlacedGrid {
	d.mu.Lock()
	defer d.mu.Unlock()
	return layout.Plan(d.catalog, d.doc, d.cfg.Columns, d.cfg.Verbose)
}

// Catalog returns the current catalog snapshot.
func (d *Desktop) Catalog() catalog.Catalog {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.catalog
}

// Diagnostics returns the discovery diagnostics from the last scan.
func (d *Desktop) Diagnostics() []catalog.Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.diags
}

// Columns returns the configured grid width.
func (d *Desktop) Columns() int {
	return d.cfg.Columns
}

// Move persists an explicit position for id and saves the document. When
// another identifier already persisted the same cell, that identifier loses
// its pin and falls back to auto-placement on the next plan.
func (d *Desktop) Move(id string, row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.catalog.Lookup(id); !ok {
		return fmt.Errorf("unknown application %q", id)
	}
	if row < 0 || col < 0 || col >= d.cfg.Columns {
		return fmt.Errorf("position (%d,%d) out of range at %d columns", row, col, d.cfg.Columns)
	}

	target := layout.Cell{Row: row, Col: col}
	for other, cell := range d.doc.Positions {
		if other != id && cell == target {
			delete(d.doc.Positions, other)
			if d.cfg.Verbose {
				log.Printf("Desk: Unpinned %q from %+v for %q", other, target, id)
			}
		}
	}
	d.doc.Set(id, target)

	if err := d.cfg.Store.Save(d.doc); err != nil {
		// The in-memory move stands; the old on-disk copy is intact.
		log.Printf("Desk: Failed to save layout: %v", err)
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// Activate launches the application asynchronously. The interactive loop is
// never blocked; the spawn outcome arrives on Results.
func (d *Desktop) Activate(id string) {
	d.mu.Lock()
	entry, ok := d.catalog.Lookup(id)
	d.mu.Unlock()
	if !ok {
		log.Printf("Desk: Activate for unknown application %q", id)
		return
	}

	go func() {
		outcome := d.cfg.Launcher.Launch(entry)
		launches := 0
		if outcome.Launched() && d.cfg.History != nil {
			if err := d.cfg.History.Record(entry.ID, outcome.Via); err != nil {
				log.Printf("Desk: Failed to record launch: %v", err)
			} else if n, err := d.cfg.History.Count(entry.ID); err == nil {
				launches = n
			}
		}
		d.results <- LaunchResult{ID: entry.ID, Name: entry.Name, Outcome: outcome, Launches: launches}
	}()
}

// Results delivers launch outcomes to the UI.
func (d *Desktop) Results() <-chan LaunchResult {
	return d.results
}

// Save writes the current layout document, used on clean shutdown.
func (d *Desktop) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Store.Save(d.doc)
}
