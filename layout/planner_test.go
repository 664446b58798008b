// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"
	"testing"

	"github.com/framegrace/cyberdesk/catalog"
)

func testCatalog(n int) catalog.Catalog {
	cat := make(catalog.Catalog, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("app%02d", i)
		cat = append(cat, catalog.AppEntry{ID: id, Name: id, Exec: id})
	}
	return cat
}

func TestPlanTotalAndCollisionFree(t *testing.T) {
	for _, columns := range []int{1, 3, 4, 7} {
		cat := testCatalog(13)
		grid := Plan(cat, NewDocument(), columns, false)

		if len(grid.Entries) != len(cat) {
			t.Fatalf("columns=%d: placed %d of %d entries", columns, len(grid.Entries), len(cat))
		}
		seen := map[Cell]string{}
		for _, p := range grid.Entries {
			cell := Cell{Row: p.Row, Col: p.Col}
			if other, taken := seen[cell]; taken {
				t.Fatalf("columns=%d: %s and %s share %+v", columns, other, p.Entry.ID, cell)
			}
			if p.Col < 0 || p.Col >= columns || p.Row < 0 {
				t.Fatalf("columns=%d: %s placed out of range at %+v", columns, p.Entry.ID, cell)
			}
			seen[cell] = p.Entry.ID
		}
	}
}

func TestPlanEmptyLayoutScanOrder(t *testing.T) {
	// Single entry, empty layout, 4 columns: lands at the origin.
	cat := catalog.Catalog{{ID: "foo", Name: "Foo", Exec: "foo-bin"}}
	grid := Plan(cat, NewDocument(), 4, false)

	if len(grid.Entries) != 1 {
		t.Fatalf("placed %d entries, want 1", len(grid.Entries))
	}
	if grid.Entries[0].Row != 0 || grid.Entries[0].Col != 0 {
		t.Errorf("foo placed at (%d,%d), want (0,0)", grid.Entries[0].Row, grid.Entries[0].Col)
	}
}

func TestPlanHonorsPersistedPosition(t *testing.T) {
	cat := testCatalog(5)
	doc := NewDocument()
	doc.Set("app03", Cell{Row: 2, Col: 1})

	grid := Plan(cat, doc, 4, false)
	p, ok := grid.At(2, 1)
	if !ok || p.Entry.ID != "app03" {
		t.Errorf("cell (2,1) holds %v, want app03", p.Entry.ID)
	}
}

func TestPlanInvalidPositionAutoPlaces(t *testing.T) {
	cat := testCatalog(2)
	doc := NewDocument()
	doc.Set("app00", Cell{Row: -1, Col: 0})
	doc.Set("app01", Cell{Row: 0, Col: 9}) // out of range at 4 columns

	grid := Plan(cat, doc, 4, false)
	for _, p := range grid.Entries {
		if p.Row < 0 || p.Col >= 4 {
			t.Errorf("%s kept invalid position (%d,%d)", p.Entry.ID, p.Row, p.Col)
		}
	}
}

func TestPlanConflictReassignsLater(t *testing.T) {
	cat := testCatalog(3)
	doc := NewDocument()
	doc.Set("app00", Cell{Row: 0, Col: 2})
	doc.Set("app02", Cell{Row: 0, Col: 2}) // same cell; later in catalog order

	grid := Plan(cat, doc, 4, false)

	if p, ok := grid.At(0, 2); !ok || p.Entry.ID != "app00" {
		t.Errorf("contested cell holds %v, want the earlier entry app00", p.Entry.ID)
	}
	seen := map[Cell]bool{}
	for _, p := range grid.Entries {
		cell := Cell{Row: p.Row, Col: p.Col}
		if seen[cell] {
			t.Fatalf("collision at %+v after reassignment", cell)
		}
		seen[cell] = true
	}
}

func TestPlanFillsGapsAroundPersisted(t *testing.T) {
	cat := testCatalog(4)
	doc := NewDocument()
	doc.Set("app00", Cell{Row: 0, Col: 1})

	grid := Plan(cat, doc, 2, false)

	// app01 takes the free origin, app02 the next free cell after (0,1).
	if p, _ := grid.At(0, 0); p.Entry.ID != "app01" {
		t.Errorf("(0,0) holds %s, want app01", p.Entry.ID)
	}
	if p, _ := grid.At(1, 0); p.Entry.ID != "app02" {
		t.Errorf("(1,0) holds %s, want app02", p.Entry.ID)
	}
	if p, _ := grid.At(1, 1); p.Entry.ID != "app03" {
		t.Errorf("(1,1) holds %s, want app03", p.Entry.ID)
	}
}

func TestPlanDoesNotPersistAutoPlacement(t *testing.T) {
	cat := testCatalog(3)
	doc := NewDocument()

	Plan(cat, doc, 4, false)
	if len(doc.Positions) != 0 {
		t.Errorf("auto-placement leaked into the document: %v", doc.Positions)
	}
}
