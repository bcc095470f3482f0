// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import "testing"

func TestCurrentIsStable(t *testing.T) {
	c := NewController()
	first := c.Current()
	if first == "" {
		t.Fatal("expected a session id")
	}
	if second := c.Current(); second != first {
		t.Errorf("Current changed between calls: %q then %q", first, second)
	}
}

func TestRotateMintsFreshID(t *testing.T) {
	c := NewController()
	first := c.Current()

	seen := map[string]bool{first: true}
	for i := 0; i < 10; i++ {
		id := c.Rotate()
		if id == "" {
			t.Fatal("rotate returned empty id")
		}
		if seen[id] {
			t.Fatalf("rotate returned a repeated id %q", id)
		}
		seen[id] = true
		if c.Current() != id {
			t.Error("Current does not match last rotated id")
		}
	}
}

func TestClearStartsNewSessionLazily(t *testing.T) {
	c := NewController()
	first := c.Current()
	c.Clear()
	if next := c.Current(); next == first {
		t.Errorf("Current after Clear returned the old id %q", next)
	}
}
