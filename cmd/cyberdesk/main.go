// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/cyberdesk/main.go
// Summary: CyberDesk entry point: flag parsing, wiring, and mode dispatch.
// Usage: Run `cyberdesk` for the interactive grid, `cyberdesk -list` for a
// catalog dump, `cyberdesk -inspect <id>` to view a raw desktop entry.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/cyberdesk/catalog"
	"github.com/framegrace/cyberdesk/config"
	"github.com/framegrace/cyberdesk/desk"
	"github.com/framegrace/cyberdesk/history"
	"github.com/framegrace/cyberdesk/launch"
	"github.com/framegrace/cyberdesk/layout"
	"github.com/framegrace/cyberdesk/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("cyberdesk", flag.ContinueOnError)
	listOnly := fs.Bool("list", false, "Print the discovered application catalog and exit")
	inspect := fs.String("inspect", "", "Print the raw desktop entry for an application id and exit")
	columns := fs.Int("columns", opts.Columns, "Grid width in icons")
	glyphsOnly := fs.Bool("glyphs-only", opts.GlyphsOnly, "Skip icon theme lookup, always render glyphs")
	noLabels := fs.Bool("no-labels", opts.NoLabels, "Hide name labels under icons")
	verbose := fs.Bool("verbose", opts.Verbose, "Log parse and placement decisions")
	configDir := fs.String("config-dir", opts.ConfigDir, "Override the configuration directory")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	opts.Columns = *columns
	opts.GlyphsOnly = *glyphsOnly
	opts.NoLabels = *noLabels
	opts.Verbose = *verbose
	opts.ConfigDir = *configDir
	if opts.Columns < 1 {
		opts.Columns = 1
	}

	root, err := config.Root(opts.ConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := config.EnsureRoot(root); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	overrides := catalog.LoadIconOverrides(config.OverridesPath(root))
	resolvers := catalog.DefaultResolvers(overrides, opts.GlyphsOnly)
	store := layout.NewStore(config.LayoutPath(root))
	launcher := launch.New()

	// History is best-effort; a broken database never blocks the desktop.
	hist, err := history.Open(config.HistoryPath(root))
	if err != nil {
		log.Printf("History: disabled: %v", err)
		hist = nil
	} else {
		defer hist.Close()
	}

	desktop, err := desk.New(desk.Config{
		Dirs:      config.ApplicationDirs(),
		Resolvers: resolvers,
		Store:     store,
		Launcher:  launcher,
		History:   hist,
		Columns:   opts.Columns,
		Verbose:   opts.Verbose,
	})
	if err != nil {
		return err
	}

	if *listOnly {
		return renderList(os.Stdout, desktop.Catalog(), historyCounts(hist))
	}
	if *inspect != "" {
		return renderInspect(os.Stdout, desktop.Catalog(), *inspect)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; use -list for non-interactive output")
	}

	// The tcell screen owns the terminal from here on, so the log moves to
	// a file under the config dir.
	logFile, err := os.OpenFile(config.LogPath(root), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("CyberDesk starting")

	front, err := ui.New(desktop, ui.Options{NoLabels: opts.NoLabels})
	if err != nil {
		return err
	}
	if err := front.Run(); err != nil {
		return err
	}
	log.Println("CyberDesk stopped cleanly")
	return nil
}

func historyCounts(hist *history.Store) map[string]int {
	if hist == nil {
		return nil
	}
	counts, err := hist.Counts()
	if err != nil {
		log.Printf("History: read counts: %v", err)
		return nil
	}
	return counts
}
