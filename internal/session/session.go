// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session manages the conversation session identifier. The
// service keeps per-session agent state keyed by this id, so rotating
// it starts a fresh conversation with no carried context.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Controller owns the current session id. Safe for concurrent use.
type Controller struct {
	mu sync.Mutex
	id string
}

// NewController creates a controller with no session yet. The first
// Current call mints one.
func NewController() *Controller {
	return &Controller{}
}

// Current returns the active session id, minting one on first use.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.id == "" {
		c.id = uuid.NewString()
	}
	return c.id
}

// Rotate discards the current id and mints a fresh one, returning it.
func (c *Controller) Rotate() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.id = uuid.NewString()
	return c.id
}

// Clear drops the current id without minting a replacement. The next
// Current call starts a new session.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.id = ""
}
