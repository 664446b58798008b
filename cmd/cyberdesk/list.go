// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/cyberdesk/list.go
// Summary: Non-interactive output: the -list catalog dump and the -inspect
// raw entry viewer with syntax highlighting.

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"

	"github.com/framegrace/cyberdesk/catalog"
)

// renderList prints one line per catalog entry in discovery order. Launch
// counts come from the history store and may be nil.
func renderList(w io.Writer, cat catalog.Catalog, counts map[string]int) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tICON\tLAUNCHES\tEXEC")
	for _, entry := range cat {
		icon := entry.Icon.Glyph
		if entry.Icon.Path != "" {
			icon = entry.Icon.Path
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			entry.ID, entry.Name, icon, counts[entry.ID], entry.Exec)
	}
	return tw.Flush()
}

// renderInspect prints the raw desktop entry file for an id, highlighted
// when stdout is a terminal.
func renderInspect(w io.Writer, cat catalog.Catalog, id string) error {
	entry, ok := cat.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown application id %q", id)
	}
	raw, err := os.ReadFile(entry.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", entry.Path, err)
	}

	fmt.Fprintf(w, "# %s\n", entry.Path)
	if f, isFile := w.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		return highlightEntry(w, string(raw))
	}
	_, err = w.Write(raw)
	return err
}

func highlightEntry(w io.Writer, source string) error {
	lexer := lexers.Get("ini")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("catppuccin-mocha")
	formatter := formatters.Get("terminal256")

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenise entry: %w", err)
	}
	return formatter.Format(w, style, it)
}
