// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/draw.go
// Summary: Renders the header, icon cards, footer, and help overlay.

package ui

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/cyberdesk/layout"
)

func (u *UI) draw() {
	u.screen.Fill(' ', styleScreen)

	u.drawHeader()
	for _, p := range u.grid.Entries {
		u.drawCard(p)
	}
	u.drawFooter()
	if u.moveMode {
		u.drawMoveCursor()
	}
	if u.showHelp {
		u.drawHelp()
	}

	u.screen.Show()
}

func (u *UI) drawHeader() {
	title := fmt.Sprintf(" CyberDesk — %d apps — page %d/%d",
		len(u.grid.Entries), u.page+1, u.geom.pageCount(u.grid.Rows()))
	u.drawText(0, 0, u.geom.width, title, styleStatus)
}

func (u *UI) drawFooter() {
	y := u.geom.height - 1
	if u.status != "" {
		style := styleStatus
		if u.statusError {
			style = styleStatusError
		}
		u.drawText(0, y, u.geom.width, " "+u.status, style)
		return
	}
	hints := " Enter launch   m move   r rescan   n/p page   ? help   q quit"
	u.drawText(0, y, u.geom.width, hints, styleStatus)
}

func (u *UI) drawCard(p layout.PlacedEntry) {
	x, y, w, h, ok := u.geom.cardRect(p.Row, p.Col, u.page)
	if !ok {
		return
	}

	border := styleCardBorder
	selected := p.Row == u.selRow && p.Col == u.selCol
	switch {
	case u.moveMode && p.Entry.ID == u.moveID:
		border = styleCardMove
	case !u.moveMode && selected:
		border = styleCardFocus
	}

	u.drawBox(x, y, w, h, border, styleCard)
	u.drawCentered(x+1, y+1, w-2, cardGlyph(p), styleGlyph)
	if !u.opts.NoLabels {
		u.drawCentered(x+1, y+3, w-2, p.Entry.Name, styleLabel)
	}
}

// drawMoveCursor marks the drop target, which may be an empty cell.
func (u *UI) drawMoveCursor() {
	if _, occupied := u.grid.At(u.selRow, u.selCol); occupied {
		return
	}
	x, y, w, h, ok := u.geom.cardRect(u.selRow, u.selCol, u.page)
	if !ok {
		return
	}
	u.drawBox(x, y, w, h, styleCardMove, styleScreen)
}

func (u *UI) drawHelp() {
	lines := []string{
		"CyberDesk keys",
		"",
		"arrows   select icon",
		"Enter    launch selected",
		"m        move icon (Enter drops, Esc cancels)",
		"r        rescan application directories",
		"n / p    next / previous page",
		"?        this help",
		"q / Esc  quit",
		"",
		"any key to close",
	}
	w := 0
	for _, l := range lines {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	w += 4
	h := len(lines) + 2
	x := (u.geom.width - w) / 2
	y := (u.geom.height - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	u.drawBox(x, y, w, h, styleCardFocus, styleCard)
	for i, l := range lines {
		u.drawText(x+2, y+1+i, w-4, l, styleCard)
	}
}

// cardGlyph picks what to paint in the icon slot. Theme image paths cannot be
// rendered in a character grid, so entries that resolved to a file fall back
// to their first letter unless a glyph was also found.
func cardGlyph(p layout.PlacedEntry) string {
	if g := p.Entry.Icon.Glyph; g != "" {
		return g
	}
	for _, r := range p.Entry.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func (u *UI) drawBox(x, y, w, h int, border, fill tcell.Style) {
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			u.screen.SetContent(col, row, ' ', nil, fill)
		}
	}
	for col := x; col < x+w; col++ {
		u.screen.SetContent(col, y, tcell.RuneHLine, nil, border)
		u.screen.SetContent(col, y+h-1, tcell.RuneHLine, nil, border)
	}
	for row := y; row < y+h; row++ {
		u.screen.SetContent(x, row, tcell.RuneVLine, nil, border)
		u.screen.SetContent(x+w-1, row, tcell.RuneVLine, nil, border)
	}
	u.screen.SetContent(x, y, tcell.RuneULCorner, nil, border)
	u.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, border)
	u.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, border)
	u.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, border)
}

// drawText writes a string clipped to max columns, respecting rune widths.
func (u *UI) drawText(x, y, max int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if col+rw > x+max {
			break
		}
		u.screen.SetContent(col, y, r, nil, style)
		col += rw
	}
}

// drawCentered centers text within a span, truncating with an ellipsis when
// it does not fit.
func (u *UI) drawCentered(x, y, span int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, span, "…")
	tw := runewidth.StringWidth(text)
	off := (span - tw) / 2
	if off < 0 {
		off = 0
	}
	u.drawText(x+off, y, span-off, text, style)
}
