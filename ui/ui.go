// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/ui.go
// Summary: tcell front end: event loop, selection, move mode, paging.
// Usage: Owns the terminal for the lifetime of Run; talks to the desktop
// core only through grid snapshots and move/activate intents.

package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/cyberdesk/desk"
	"github.com/framegrace/cyberdesk/layout"
)

// Options tweaks rendering. Icon resolution choices (glyphs only, theme
// lookup) are settled before entries reach the UI.
type Options struct {
	NoLabels bool
}

// UI renders the icon grid and feeds user intents to the desktop core.
type UI struct {
	screen tcell.Screen
	desk   *desk.Desktop
	opts   Options

	geom     geometry
	grid     layout.PlacedGrid
	selRow   int
	selCol   int
	page     int
	moveMode bool
	moveID   string
	showHelp bool

	status      string
	statusError bool
}

// New initializes the terminal screen.
func New(d *desk.Desktop, opts Options) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(styleScreen)
	screen.EnableMouse()
	screen.HideCursor()

	u := &UI{screen: screen, desk: d, opts: opts}
	u.refreshGrid()
	return u, nil
}

// Run drives the event loop until the user quits.
func (u *UI) Run() error {
	defer u.screen.Fini()

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	u.draw()
	for {
		select {
		case ev := <-events:
			if quit := u.handleEvent(ev); quit {
				return nil
			}
			u.draw()
		case res := <-u.desk.Results():
			u.showResult(res)
			u.draw()
		}
	}
}

func (u *UI) refreshGrid() {
	u.grid = u.desk.CurrentGrid()
	w, h := u.screen.Size()
	u.geom = newGeometry(w, h, u.grid.Columns)
	u.clampSelection()
}

// clampSelection keeps the selection on an existing entry, snapping to the
// first one when the current cell went away.
func (u *UI) clampSelection() {
	if u.moveMode {
		return
	}
	if _, ok := u.grid.At(u.selRow, u.selCol); ok {
		u.page = u.geom.pageOf(u.selRow)
		return
	}
	if len(u.grid.Entries) > 0 {
		u.selRow = u.grid.Entries[0].Row
		u.selCol = u.grid.Entries[0].Col
	} else {
		u.selRow, u.selCol = 0, 0
	}
	u.page = u.geom.pageOf(u.selRow)
}

func (u *UI) handleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
		u.refreshGrid()
	case *tcell.EventKey:
		return u.handleKey(tev)
	case *tcell.EventMouse:
		u.handleMouse(tev)
	}
	return false
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	if u.showHelp {
		u.showHelp = false
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if u.moveMode {
			u.cancelMove()
			return false
		}
		return true
	case tcell.KeyEnter:
		if u.moveMode {
			u.dropMove()
		} else if p, ok := u.grid.At(u.selRow, u.selCol); ok {
			u.activate(p)
		}
		return false
	case tcell.KeyUp:
		u.moveSelection(-1, 0)
		return false
	case tcell.KeyDown:
		u.moveSelection(1, 0)
		return false
	case tcell.KeyLeft:
		u.moveSelection(0, -1)
		return false
	case tcell.KeyRight:
		u.moveSelection(0, 1)
		return false
	case tcell.KeyPgUp:
		u.changePage(-1)
		return false
	case tcell.KeyPgDn:
		u.changePage(1)
		return false
	}

	switch ev.Rune() {
	case 'q':
		return !u.moveMode
	case 'm':
		u.toggleMove()
	case 'r':
		u.desk.Rescan()
		u.refreshGrid()
		u.setStatus("Rescanned applications", false)
	case 'n':
		u.changePage(1)
	case 'p':
		u.changePage(-1)
	case '?':
		u.showHelp = true
	}
	return false
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	row, col, ok := u.geom.hitTest(x, y, u.page)
	if !ok {
		return
	}

	if u.moveMode {
		u.selRow, u.selCol = row, col
		u.dropMove()
		return
	}
	if p, ok := u.grid.At(row, col); ok {
		u.selRow, u.selCol = row, col
		u.activate(p)
	}
}

// moveSelection moves the cursor. Outside move mode it only lands on
// occupied cells; in move mode it roams freely so icons can be dropped on
// empty cells.
func (u *UI) moveSelection(dRow, dCol int) {
	row, col := u.selRow+dRow, u.selCol+dCol
	if row < 0 || col < 0 || col >= u.grid.Columns {
		return
	}

	if u.moveMode {
		u.selRow, u.selCol = row, col
		u.page = u.geom.pageOf(row)
		return
	}

	// Walk further in the same direction until an entry is found.
	maxRows := u.grid.Rows()
	for row >= 0 && row < maxRows+1 && col >= 0 && col < u.grid.Columns {
		if _, ok := u.grid.At(row, col); ok {
			u.selRow, u.selCol = row, col
			u.page = u.geom.pageOf(row)
			return
		}
		row += dRow
		col += dCol
		if dRow == 0 && dCol == 0 {
			return
		}
	}
}

func (u *UI) changePage(delta int) {
	pages := u.geom.pageCount(u.grid.Rows())
	page := u.page + delta
	if page < 0 || page >= pages {
		return
	}
	u.page = page
	// Snap selection onto the new page.
	row := page * u.geom.rowsPerPage
	for r := row; r < row+u.geom.rowsPerPage; r++ {
		for c := 0; c < u.grid.Columns; c++ {
			if _, ok := u.grid.At(r, c); ok {
				u.selRow, u.selCol = r, c
				return
			}
		}
	}
}

func (u *UI) toggleMove() {
	if u.moveMode {
		u.cancelMove()
		return
	}
	p, ok := u.grid.At(u.selRow, u.selCol)
	if !ok {
		return
	}
	u.moveMode = true
	u.moveID = p.Entry.ID
	u.setStatus(fmt.Sprintf("Moving %s: arrows to position, Enter to drop, Esc to cancel", p.Entry.Name), false)
}

func (u *UI) cancelMove() {
	u.moveMode = false
	u.moveID = ""
	u.setStatus("Move cancelled", false)
	u.clampSelection()
}

func (u *UI) dropMove() {
	id := u.moveID
	u.moveMode = false
	u.moveID = ""
	if err := u.desk.Move(id, u.selRow, u.selCol); err != nil {
		u.setStatus(fmt.Sprintf("Move failed: %v", err), true)
	} else {
		u.setStatus("Position saved", false)
	}
	u.refreshGrid()
}

func (u *UI) activate(p layout.PlacedEntry) {
	u.setStatus(fmt.Sprintf("Launching %s...", p.Entry.Name), false)
	u.desk.Activate(p.Entry.ID)
}

func (u *UI) showResult(res desk.LaunchResult) {
	if res.Outcome.Launched() {
		msg := fmt.Sprintf("%s launched via %s", res.Name, res.Outcome.Via)
		if res.Launches > 0 {
			msg = fmt.Sprintf("%s (launch #%d)", msg, res.Launches)
		}
		u.setStatus(msg, false)
		return
	}
	u.setStatus(fmt.Sprintf("Failed to launch %s (%d attempts)", res.Name, len(res.Outcome.Attempts)), true)
}

func (u *UI) setStatus(msg string, isError bool) {
	u.status = msg
	u.statusError = isError
}
