// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launch/runner.go
// Summary: Thin exec wrapper so mechanisms stay testable without spawning
// real processes.

package launch

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// commandRunner abstracts process spawning. Every mechanism goes through it,
// which lets tests force per-tool failures and record spawn arguments.
type commandRunner interface {
	// LookPath reports whether name is on PATH.
	LookPath(name string) (string, error)

	// Start spawns argv fire-and-forget and releases the process handle.
	Start(argv []string) error

	// StartSession spawns argv in a new session with standard streams
	// redirected away from the controlling terminal and the working
	// directory set to the user's home.
	StartSession(argv []string) error
}

type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Start(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Fire-and-forget: the child is never waited on. Release detaches the
	// handle; the reaper or the init system collects the exit status.
	return cmd.Process.Release()
}

func (execRunner) StartSession(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if home, err := os.UserHomeDir(); err == nil {
		cmd.Dir = home
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
