// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/planner.go
// Summary: Assigns a grid cell to every catalog entry: persisted position
// when valid, next free cell in row-major scan order otherwise.

package layout

import (
	"log"

	"github.com/framegrace/cyberdesk/catalog"
)

// PlacedEntry is one catalog entry with its resolved grid cell.
type PlacedEntry struct {
	Entry catalog.AppEntry
	Row   int
	Col   int
}

// PlacedGrid is the derived, non-persisted view handed to the renderer.
// Every catalog entry appears exactly once and no two entries share a cell.
type PlacedGrid struct {
	Columns int
	Entries []PlacedEntry
}

// Rows returns the number of occupied rows.
func (g PlacedGrid) Rows() int {
	max := 0
	for _, p := range g.Entries {
		if p.Row+1 > max {
			max = p.Row + 1
		}
	}
	return max
}

// At returns the entry occupying (row, col).
func (g PlacedGrid) At(row, col int) (PlacedEntry, bool) {
	for _, p := range g.Entries {
		if p.Row == row && p.Col == col {
			return p, true
		}
	}
	return PlacedEntry{}, false
}

// Plan places every catalog entry. A persisted position is honored when it
// is valid for the column count and not already taken; conflicting or
// invalid positions fall back to auto-placement at the first free cell,
// scanning row-major from the origin. Auto-placed cells are not written
// back into the document; only explicit user moves persist.
func Plan(cat catalog.Catalog, doc Document, columns int, verbose bool) PlacedGrid {
	if columns < 1 {
		columns = 1
	}

	grid := PlacedGrid{Columns: columns}
	occupied := make(map[Cell]bool)
	placed := make(map[string]Cell)

	// First pass: honor valid, unconflicted persisted positions in catalog
	// order so an earlier entry wins a contested cell.
	for _, entry := range cat {
		cell, ok := doc.Positions[entry.ID]
		if !ok {
			continue
		}
		if cell.Row < 0 || cell.Col < 0 || cell.Col >= columns {
			if verbose {
				log.Printf("Layout: Position %+v for %q invalid at %d columns, auto-placing", cell, entry.ID, columns)
			}
			continue
		}
		if occupied[cell] {
			if verbose {
				log.Printf("Layout: Position %+v for %q already taken, auto-placing", cell, entry.ID)
			}
			continue
		}
		occupied[cell] = true
		placed[entry.ID] = cell
	}

	// Second pass: auto-place the rest row-major from (0,0).
	cursor := Cell{}
	nextFree := func() Cell {
		for occupied[cursor] {
			cursor.Col++
			if cursor.Col == columns {
				cursor.Col = 0
				cursor.Row++
			}
		}
		return cursor
	}

	for _, entry := range cat {
		cell, ok := placed[entry.ID]
		if !ok {
			cell = nextFree()
			occupied[cell] = true
		}
		grid.Entries = append(grid.Entries, PlacedEntry{Entry: entry, Row: cell.Row, Col: cell.Col})
	}

	return grid
}
