// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launch/terminal.go
// Summary: Wraps terminal-required commands in the first available
// terminal emulator.

package launch

import (
	"fmt"
	"strings"
)

// terminalEmulators is probed in order. The flag separates the emulator's
// own options from the command it should run.
var terminalEmulators = []struct {
	name string
	flag string
}{
	{"x-terminal-emulator", "-e"},
	{"gnome-terminal", "--"},
	{"kitty", "-e"},
	{"alacritty", "-e"},
	{"xfce4-terminal", "-x"},
	{"konsole", "-e"},
	{"terminator", "-x"},
	{"xterm", "-e"},
}

// wrapTerminal prefixes argv with an installed terminal emulator. Fails when
// none of the known emulators is on PATH.
func wrapTerminal(runner commandRunner, argv []string) ([]string, error) {
	for _, term := range terminalEmulators {
		if _, err := runner.LookPath(term.name); err != nil {
			continue
		}
		wrapped := append([]string{term.name, term.flag}, argv...)
		return wrapped, nil
	}
	return nil, fmt.Errorf("no terminal emulator found for %q", strings.Join(argv, " "))
}
