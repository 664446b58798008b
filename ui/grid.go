// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/grid.go
// Summary: Pure grid geometry: card rectangles, paging, and hit testing.
// Kept free of tcell so it is testable without a screen.

package ui

// Card dimensions in terminal cells, border included.
const (
	cardWidth  = 22
	cardHeight = 5
	cardGutter = 1

	headerRows = 1
	footerRows = 1
)

// geometry captures everything needed to map grid cells to screen space for
// one window size.
type geometry struct {
	width, height int
	columns       int
	rowsPerPage   int
}

func newGeometry(width, height, columns int) geometry {
	usable := height - headerRows - footerRows
	rows := usable / (cardHeight + cardGutter)
	if rows < 1 {
		rows = 1
	}
	return geometry{width: width, height: height, columns: columns, rowsPerPage: rows}
}

// gridWidth is the pixel width of the full card row, for centering.
func (g geometry) gridWidth() int {
	return g.columns*(cardWidth+cardGutter) - cardGutter
}

// originX left-aligns small grids in the middle of the window.
func (g geometry) originX() int {
	x := (g.width - g.gridWidth()) / 2
	if x < 0 {
		x = 0
	}
	return x
}

// pageOf returns which page a grid row lands on.
func (g geometry) pageOf(row int) int {
	return row / g.rowsPerPage
}

// pageCount returns the number of pages needed for totalRows.
func (g geometry) pageCount(totalRows int) int {
	if totalRows <= 0 {
		return 1
	}
	return (totalRows + g.rowsPerPage - 1) / g.rowsPerPage
}

// cardRect maps a grid cell to its on-screen rectangle for the given page.
// ok is false when the cell is not on that page.
func (g geometry) cardRect(row, col, page int) (x, y, w, h int, ok bool) {
	if g.pageOf(row) != page {
		return 0, 0, 0, 0, false
	}
	localRow := row - page*g.rowsPerPage
	x = g.originX() + col*(cardWidth+cardGutter)
	y = headerRows + localRow*(cardHeight+cardGutter)
	return x, y, cardWidth, cardHeight, true
}

// hitTest maps a screen coordinate back to a grid cell on the given page.
func (g geometry) hitTest(x, y, page int) (row, col int, ok bool) {
	x -= g.originX()
	y -= headerRows
	if x < 0 || y < 0 {
		return 0, 0, false
	}

	col = x / (cardWidth + cardGutter)
	if col >= g.columns || x%(cardWidth+cardGutter) >= cardWidth {
		return 0, 0, false
	}

	localRow := y / (cardHeight + cardGutter)
	if localRow >= g.rowsPerPage || y%(cardHeight+cardGutter) >= cardHeight {
		return 0, 0, false
	}

	return page*g.rowsPerPage + localRow, col, true
}
