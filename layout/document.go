// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/document.go
// Summary: In-memory and on-disk forms of the persisted grid layout.

package layout

import (
	"encoding/json"
	"sort"

	"github.com/framegrace/cyberdesk/catalog"
)

// FormatVersion tags the on-disk layout document.
const FormatVersion = 1

// Cell is a grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Document is the persisted mapping from application identifier to grid
// position. At most one position exists per identifier.
type Document struct {
	Version   int
	Positions map[string]Cell
}

// NewDocument returns an empty document at the current format version.
func NewDocument() Document {
	return Document{Version: FormatVersion, Positions: make(map[string]Cell)}
}

// Clone returns an independent copy so callers can hand out snapshots.
func (d Document) Clone() Document {
	out := NewDocument()
	out.Version = d.Version
	for id, cell := range d.Positions {
		out.Positions[id] = cell
	}
	return out
}

// Set records a position for id, replacing any previous one.
func (d Document) Set(id string, cell Cell) {
	d.Positions[id] = cell
}

// wireDocument is the JSON shape: {"version":1,"positions":[{"id","row","col"}]}.
type wireDocument struct {
	Version   int            `json:"version"`
	Positions []wirePosition `json:"positions"`
}

type wirePosition struct {
	ID  string `json:"id"`
	Row int    `json:"row"`
	Col int    `json:"col"`
}

// MarshalJSON writes positions sorted by identifier so saved files are
// stable under diffing.
func (d Document) MarshalJSON() ([]byte, error) {
	wire := wireDocument{Version: d.Version}
	ids := make([]string, 0, len(d.Positions))
	for id := range d.Positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cell := d.Positions[id]
		wire.Positions = append(wire.Positions, wirePosition{ID: id, Row: cell.Row, Col: cell.Col})
	}
	return json.Marshal(wire)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*d = NewDocument()
	d.Version = wire.Version
	for _, p := range wire.Positions {
		d.Positions[p.ID] = Cell{Row: p.Row, Col: p.Col}
	}
	return nil
}

// Reconcile returns a copy of doc without positions for identifiers that are
// no longer present in the catalog. Stale entries are dropped silently.
func Reconcile(doc Document, cat catalog.Catalog) Document {
	present := make(map[string]bool, len(cat))
	for _, entry := range cat {
		present[entry.ID] = true
	}

	out := NewDocument()
	out.Version = doc.Version
	for id, cell := range doc.Positions {
		if present[id] {
			out.Positions[id] = cell
		}
	}
	return out
}
