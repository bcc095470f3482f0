// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package history keeps a recency-bounded log of completed turns,
// persisted under the state directory so the chat REPL can show recent
// questions across runs.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"askdb/cli/internal/protocol"
	"askdb/cli/internal/xdg"
)

const fileName = "history.json"

// DefaultLimit bounds the number of retained entries when the config
// does not say otherwise.
const DefaultLimit = 50

// Entry is one completed turn.
type Entry struct {
	Question      string    `json:"question"`
	Response      string    `json:"response"`
	RowCount      int       `json:"row_count"`
	FromCache     bool      `json:"from_cache"`
	ExecutionTime float64   `json:"execution_time"`
	At            time.Time `json:"at"`
}

// Store persists entries to a JSON file, newest last, trimmed to the
// limit. Implements the protocol layer's Recorder.
type Store struct {
	mu      sync.Mutex
	path    string
	limit   int
	entries []Entry
}

// NewStore opens the store in the state directory, loading whatever
// entries a previous run left behind.
func NewStore(limit int) (*Store, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return newStoreAt(filepath.Join(dir, fileName), limit)
}

func newStoreAt(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &Store{path: path, limit: limit}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		// A corrupt history file is not worth failing startup over.
		s.entries = nil
	}
	s.trim()
	return s, nil
}

// Record appends a completed turn and persists the store. Persistence
// failures are swallowed: history is a convenience, not state the turn
// depends on.
func (s *Store) Record(question string, res protocol.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{
		Question:      question,
		Response:      res.Response,
		RowCount:      len(res.Rows),
		FromCache:     res.FromCache,
		ExecutionTime: res.ExecutionTime,
		At:            time.Now().UTC(),
	})
	s.trim()
	_ = s.save()
}

// Entries returns the retained entries, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops all entries and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) trim() {
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
