// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launch/launch.go
// Summary: Ordered launch mechanism chain: desktop-aware, supervised
// detached, raw detached. First success wins.
// Usage: The desktop core calls Launch on activation; the call is
// synchronous, callers run it off the interactive loop.

package launch

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/framegrace/cyberdesk/catalog"
)

// Mechanism is one way to start an application detached from this process.
type Mechanism interface {
	ID() string
	Attempt(entry catalog.AppEntry) error
}

// Attempt records one failed mechanism try.
type Attempt struct {
	Mechanism string
	Err       error
}

// Outcome reports a launch. Via names the mechanism that succeeded;
// when Via is empty all mechanisms failed and Attempts holds every error
// in chain order.
type Outcome struct {
	Via      string
	Attempts []Attempt
}

// Launched reports whether any mechanism succeeded.
func (o Outcome) Launched() bool { return o.Via != "" }

func (o Outcome) String() string {
	if o.Launched() {
		return fmt.Sprintf("launched via %s", o.Via)
	}
	return fmt.Sprintf("failed after %d attempts", len(o.Attempts))
}

// Launcher walks an ordered mechanism chain.
type Launcher struct {
	mechanisms []Mechanism
}

// New returns a launcher with the default chain: gtk-launch, systemd-run,
// raw setsid spawn.
func New() *Launcher {
	runner := execRunner{}
	return NewWithMechanisms(
		&desktopMechanism{runner: runner},
		&systemdMechanism{runner: runner, nonce: func() string {
			// Short nonce keeps unit names unique across rapid relaunches.
			return uuid.NewString()[:8]
		}},
		&setsidMechanism{runner: runner},
	)
}

// NewWithMechanisms builds a launcher over an explicit chain.
func NewWithMechanisms(mechanisms ...Mechanism) *Launcher {
	return &Launcher{mechanisms: mechanisms}
}

// Launch tries each mechanism in order until one spawns the entry. Success
// means the spawn call returned without an OS-level error; the child's exit
// status is never tracked. Every failed attempt is recorded, and exhausting
// the chain yields a failed Outcome carrying all of them.
func (l *Launcher) Launch(entry catalog.AppEntry) Outcome {
	var outcome Outcome
	for _, m := range l.mechanisms {
		if err := m.Attempt(entry); err != nil {
			outcome.Attempts = append(outcome.Attempts, Attempt{Mechanism: m.ID(), Err: err})
			log.Printf("Launch: %s failed for %q: %v", m.ID(), entry.ID, err)
			continue
		}
		outcome.Via = m.ID()
		log.Printf("Launch: Started %q via %s", entry.ID, m.ID())
		return outcome
	}
	log.Printf("Launch: All %d mechanisms failed for %q", len(l.mechanisms), entry.ID)
	return outcome
}

// desktopMechanism delegates to the desktop environment's own launcher,
// which honors startup notification, icons, and workspace placement.
type desktopMechanism struct {
	runner commandRunner
}

func (m *desktopMechanism) ID() string { return "gtk-launch" }

func (m *desktopMechanism) Attempt(entry catalog.AppEntry) error {
	if _, err := m.runner.LookPath("gtk-launch"); err != nil {
		return fmt.Errorf("gtk-launch unavailable: %w", err)
	}
	return m.runner.Start([]string{"gtk-launch", entry.ID})
}

// systemdMechanism runs the command as a transient user-scoped unit, so the
// child survives this process and is never reparented to it.
type systemdMechanism struct {
	runner commandRunner
	nonce  func() string
}

func (m *systemdMechanism) ID() string { return "systemd-run" }

func (m *systemdMechanism) Attempt(entry catalog.AppEntry) error {
	if _, err := m.runner.LookPath("systemd-run"); err != nil {
		return fmt.Errorf("systemd-run unavailable: %w", err)
	}
	argv, err := entryArgv(m.runner, entry)
	if err != nil {
		return err
	}

	unit := fmt.Sprintf("cyberdesk-%s-%s", entry.ID, m.nonce())
	cmd := append([]string{
		"systemd-run", "--user", "--collect", "--quiet", "--unit", unit, "--",
	}, argv...)
	return m.runner.Start(cmd)
}

// setsidMechanism is the last resort: spawn directly in a new session with
// standard streams detached. Needs no system service manager.
type setsidMechanism struct {
	runner commandRunner
}

func (m *setsidMechanism) ID() string { return "setsid" }

func (m *setsidMechanism) Attempt(entry catalog.AppEntry) error {
	argv, err := entryArgv(m.runner, entry)
	if err != nil {
		return err
	}
	return m.runner.StartSession(argv)
}

// entryArgv resolves the spawn argv for an entry: splits the exec line,
// verifies the executable exists, and wraps terminal-required commands in a
// terminal emulator.
func entryArgv(runner commandRunner, entry catalog.AppEntry) ([]string, error) {
	argv := catalog.SplitExec(entry.Exec)
	if len(argv) == 0 {
		return nil, fmt.Errorf("entry %q has no command", entry.ID)
	}
	if _, err := runner.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("executable %q not found: %w", argv[0], err)
	}
	if entry.TerminalRequired {
		return wrapTerminal(runner, argv)
	}
	return argv, nil
}
