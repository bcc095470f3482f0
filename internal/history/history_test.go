// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package history

import (
	"os"
	"path/filepath"
	"testing"

	"askdb/cli/internal/protocol"
)

func TestRecordAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s, err := newStoreAt(path, 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Record("how many orders?", protocol.Result{
		Response:      "42",
		Rows:          []map[string]any{{"n": 42}},
		ExecutionTime: 1.5,
	})

	reloaded, err := newStoreAt(path, 10)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	entries := reloaded.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Question != "how many orders?" || e.Response != "42" || e.RowCount != 1 {
		t.Errorf("entry = %+v", e)
	}
}

func TestLimitKeepsNewestEntries(t *testing.T) {
	s, err := newStoreAt(filepath.Join(t.TempDir(), "history.json"), 3)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for _, q := range []string{"one", "two", "three", "four", "five"} {
		s.Record(q, protocol.Result{})
	}

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Question != "three" || entries[2].Question != "five" {
		t.Errorf("kept = %q..%q, want three..five", entries[0].Question, entries[2].Question)
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := newStoreAt(path, 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Errorf("entries = %v, want none", s.Entries())
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	s, err := newStoreAt(path, 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Record("q", protocol.Result{})

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.Entries()) != 0 {
		t.Error("entries remain after clear")
	}
	// Clearing twice must not fail on the missing file.
	if err := s.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
