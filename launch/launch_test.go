// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package launch

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/framegrace/cyberdesk/catalog"
)

// fakeRunner records spawns and fails lookups/starts on demand.
type fakeRunner struct {
	missing    map[string]bool // names absent from PATH
	startErr   map[string]error
	sessionErr error

	started  [][]string
	sessions [][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		missing:  make(map[string]bool),
		startErr: make(map[string]error),
	}
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", fmt.Errorf("%s: not found", name)
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) Start(argv []string) error {
	if err := f.startErr[argv[0]]; err != nil {
		return err
	}
	f.started = append(f.started, argv)
	return nil
}

func (f *fakeRunner) StartSession(argv []string) error {
	if f.sessionErr != nil {
		return f.sessionErr
	}
	f.sessions = append(f.sessions, argv)
	return nil
}

func testLauncher(runner *fakeRunner) *Launcher {
	return NewWithMechanisms(
		&desktopMechanism{runner: runner},
		&systemdMechanism{runner: runner, nonce: func() string { return "42" }},
		&setsidMechanism{runner: runner},
	)
}

var fooEntry = catalog.AppEntry{ID: "foo", Name: "Foo", Exec: "foo-bin --flag"}

func TestLaunchPrefersDesktopMechanism(t *testing.T) {
	runner := newFakeRunner()
	outcome := testLauncher(runner).Launch(fooEntry)

	if !outcome.Launched() || outcome.Via != "gtk-launch" {
		t.Fatalf("outcome = %+v, want launched via gtk-launch", outcome)
	}
	want := [][]string{{"gtk-launch", "foo"}}
	if !reflect.DeepEqual(runner.started, want) {
		t.Errorf("started = %v, want %v", runner.started, want)
	}
	if len(outcome.Attempts) != 0 {
		t.Errorf("attempts = %v, want none on first-try success", outcome.Attempts)
	}
}

func TestLaunchFallsBackToSystemdRun(t *testing.T) {
	runner := newFakeRunner()
	runner.missing["gtk-launch"] = true

	outcome := testLauncher(runner).Launch(fooEntry)
	if outcome.Via != "systemd-run" {
		t.Fatalf("outcome = %+v, want systemd-run", outcome)
	}
	if len(outcome.Attempts) != 1 || outcome.Attempts[0].Mechanism != "gtk-launch" {
		t.Errorf("attempts = %v, want the gtk-launch failure recorded", outcome.Attempts)
	}

	if len(runner.started) != 1 {
		t.Fatalf("started = %v, want one systemd-run spawn", runner.started)
	}
	argv := runner.started[0]
	wantPrefix := []string{"systemd-run", "--user", "--collect", "--quiet", "--unit", "cyberdesk-foo-42", "--"}
	if !reflect.DeepEqual(argv[:len(wantPrefix)], wantPrefix) {
		t.Errorf("argv = %v, want prefix %v", argv, wantPrefix)
	}
	if !reflect.DeepEqual(argv[len(wantPrefix):], []string{"foo-bin", "--flag"}) {
		t.Errorf("argv tail = %v, want the entry command", argv[len(wantPrefix):])
	}
}

func TestLaunchFallsBackToSetsid(t *testing.T) {
	runner := newFakeRunner()
	runner.missing["gtk-launch"] = true
	runner.missing["systemd-run"] = true

	outcome := testLauncher(runner).Launch(fooEntry)
	if outcome.Via != "setsid" {
		t.Fatalf("outcome = %+v, want setsid", outcome)
	}
	if !reflect.DeepEqual(runner.sessions, [][]string{{"foo-bin", "--flag"}}) {
		t.Errorf("sessions = %v, want the raw command", runner.sessions)
	}
}

func TestLaunchExhaustionRecordsAllAttempts(t *testing.T) {
	runner := newFakeRunner()
	runner.missing["gtk-launch"] = true
	runner.missing["systemd-run"] = true
	runner.sessionErr = fmt.Errorf("fork failed")

	outcome := testLauncher(runner).Launch(fooEntry)
	if outcome.Launched() {
		t.Fatalf("outcome = %+v, want failure", outcome)
	}

	var order []string
	for _, a := range outcome.Attempts {
		if a.Err == nil {
			t.Errorf("attempt %s recorded without an error", a.Mechanism)
		}
		order = append(order, a.Mechanism)
	}
	want := []string{"gtk-launch", "systemd-run", "setsid"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("attempt order = %v, want %v", order, want)
	}
}

func TestLaunchMissingExecutable(t *testing.T) {
	runner := newFakeRunner()
	runner.missing["gtk-launch"] = true
	runner.missing["foo-bin"] = true

	outcome := testLauncher(runner).Launch(fooEntry)
	if outcome.Launched() {
		t.Fatalf("outcome = %+v, want failure when the binary is missing", outcome)
	}
	for _, a := range outcome.Attempts[1:] {
		if !strings.Contains(a.Err.Error(), "foo-bin") {
			t.Errorf("%s error = %v, want the missing binary named", a.Mechanism, a.Err)
		}
	}
}

func TestLaunchTerminalWrapping(t *testing.T) {
	entry := catalog.AppEntry{ID: "htop", Name: "Htop", Exec: "htop", TerminalRequired: true}

	runner := newFakeRunner()
	runner.missing["gtk-launch"] = true
	runner.missing["systemd-run"] = true
	runner.missing["x-terminal-emulator"] = true
	runner.missing["gnome-terminal"] = true

	outcome := testLauncher(runner).Launch(entry)
	if outcome.Via != "setsid" {
		t.Fatalf("outcome = %+v, want setsid", outcome)
	}
	want := [][]string{{"kitty", "-e", "htop"}}
	if !reflect.DeepEqual(runner.sessions, want) {
		t.Errorf("sessions = %v, want %v (first available emulator)", runner.sessions, want)
	}
}

func TestLaunchNoTerminalEmulator(t *testing.T) {
	entry := catalog.AppEntry{ID: "htop", Name: "Htop", Exec: "htop", TerminalRequired: true}

	runner := newFakeRunner()
	runner.missing["gtk-launch"] = true
	runner.missing["systemd-run"] = true
	for _, term := range terminalEmulators {
		runner.missing[term.name] = true
	}

	outcome := testLauncher(runner).Launch(entry)
	if outcome.Launched() {
		t.Fatalf("outcome = %+v, want failure with no terminal emulator", outcome)
	}
	last := outcome.Attempts[len(outcome.Attempts)-1]
	if !strings.Contains(last.Err.Error(), "terminal emulator") {
		t.Errorf("last error = %v, want a terminal emulator complaint", last.Err)
	}
}

func TestLaunchGtkLaunchStartFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.startErr["gtk-launch"] = fmt.Errorf("exec format error")

	outcome := testLauncher(runner).Launch(fooEntry)
	if outcome.Via != "systemd-run" {
		t.Fatalf("outcome = %+v, want fallback past the failed spawn", outcome)
	}
	if len(outcome.Attempts) != 1 {
		t.Errorf("attempts = %v, want exactly the gtk-launch failure", outcome.Attempts)
	}
}
