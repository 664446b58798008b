// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/theme.go
// Summary: Color palette and styles for the icon grid.

package ui

import "github.com/gdamore/tcell/v2"

// Palette follows the Catppuccin Mocha scheme.
var (
	colorBase    = tcell.NewHexColor(0x1e1e2e)
	colorSurface = tcell.NewHexColor(0x313244)
	colorBorder  = tcell.NewHexColor(0x45475a)
	colorAccent  = tcell.NewHexColor(0x89b4fa)
	colorText    = tcell.NewHexColor(0xcdd6f4)
	colorSubtext = tcell.NewHexColor(0xbac2de)
	colorMuted   = tcell.NewHexColor(0x6c7086)
	colorGlyph   = tcell.NewHexColor(0xf9e2af)
	colorError   = tcell.NewHexColor(0xf38ba8)
	colorMove    = tcell.NewHexColor(0xa6e3a1)
)

var (
	styleScreen      = tcell.StyleDefault.Background(colorBase).Foreground(colorText)
	styleCard        = tcell.StyleDefault.Background(colorSurface).Foreground(colorText)
	styleCardBorder  = tcell.StyleDefault.Background(colorSurface).Foreground(colorBorder)
	styleCardFocus   = tcell.StyleDefault.Background(colorSurface).Foreground(colorAccent)
	styleCardMove    = tcell.StyleDefault.Background(colorSurface).Foreground(colorMove)
	styleGlyph       = tcell.StyleDefault.Background(colorSurface).Foreground(colorGlyph)
	styleLabel       = tcell.StyleDefault.Background(colorSurface).Foreground(colorSubtext)
	styleStatus      = tcell.StyleDefault.Background(colorBase).Foreground(colorMuted)
	styleStatusError = tcell.StyleDefault.Background(colorBase).Foreground(colorError)
)
