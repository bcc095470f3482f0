// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package interrupt

import (
	"fmt"
	"sync"
)

// Broker holds at most one pending interrupt and hands its decision
// back through a one-shot channel. The protocol client always resolves
// or cancels the pending slot before starting another round-trip, so a
// second Await while one is pending is a programming error.
type Broker struct {
	mu      sync.Mutex
	pending *pendingInterrupt
}

type pendingInterrupt struct {
	interrupt Interrupt
	decision  chan Decision
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Await registers the interrupt as pending and returns a channel that
// yields exactly one Decision once Resolve or CancelPending is called.
// Returns an error if an interrupt is already pending.
func (b *Broker) Await(it Interrupt) (<-chan Decision, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		return nil, fmt.Errorf("interrupt already pending (type %q)", b.pending.interrupt.Kind)
	}

	p := &pendingInterrupt{
		interrupt: it,
		decision:  make(chan Decision, 1),
	}
	b.pending = p
	return p.decision, nil
}

// Resolve settles the pending interrupt with the given decision.
// A nil decision is delivered as an empty one. Resolving with nothing
// pending is a no-op.
func (b *Broker) Resolve(d Decision) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return
	}
	if d == nil {
		d = EmptyDecision()
	}
	b.pending.decision <- d
	b.pending = nil
}

// CancelPending settles any pending interrupt with an empty decision.
// Called on teardown, context reset, logout, and before starting a new
// turn, so an abandoned continuation never stays unsettled.
func (b *Broker) CancelPending() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return
	}
	b.pending.decision <- EmptyDecision()
	b.pending = nil
}

// Pending reports whether an interrupt is currently awaiting a decision,
// and returns it when there is one.
func (b *Broker) Pending() (Interrupt, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return Interrupt{}, false
	}
	return b.pending.interrupt, true
}
