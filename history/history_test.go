// Copyright © 2025 CyberDesk contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndCounts(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.Record("foo", "gtk-launch"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := store.Record("bar", "setsid"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	counts, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["foo"] != 3 || counts["bar"] != 1 {
		t.Errorf("counts = %v, want foo=3 bar=1", counts)
	}
}

func TestCountSingleApp(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record("foo", "gtk-launch"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if n, err := store.Count("foo"); err != nil || n != 1 {
		t.Errorf("Count(foo) = %d, %v, want 1", n, err)
	}
	if n, err := store.Count("ghost"); err != nil || n != 0 {
		t.Errorf("Count(ghost) = %d, %v, want 0", n, err)
	}
}

func TestCountsEmpty(t *testing.T) {
	store := openTestStore(t)

	counts, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("counts = %v, want empty", counts)
	}
}

func TestLastLaunch(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LastLaunch("foo"); err != nil || ok {
		t.Fatalf("LastLaunch before any record = ok=%v err=%v, want none", ok, err)
	}

	if err := store.Record("foo", "setsid"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	stamp, ok, err := store.LastLaunch("foo")
	if err != nil || !ok {
		t.Fatalf("LastLaunch = ok=%v err=%v, want a timestamp", ok, err)
	}
	if stamp.IsZero() {
		t.Error("LastLaunch returned the zero time")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record("foo", "gtk-launch"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	counts, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["foo"] != 1 {
		t.Errorf("counts after reopen = %v, want foo=1", counts)
	}
}
