// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package health polls the askdb service and tracks connection state.
// A single slow or dropped probe does not flip the state; two
// consecutive failures do. Probe failures are never surfaced as errors,
// only as state changes.
package health

import (
	"context"
	"sync"
	"time"
)

// State is the connection state derived from probe results.
type State string

const (
	// StateConnecting means a check is in flight and no verdict exists yet.
	StateConnecting State = "connecting"
	// StateConnected means the last probe succeeded.
	StateConnected State = "connected"
	// StateDisconnected means two or more consecutive probes failed.
	StateDisconnected State = "disconnected"
)

// Probe reports whether the service answered a health check.
type Probe func(ctx context.Context) bool

// Monitor runs the probe on an interval and exposes the resulting
// connection state. Safe for concurrent use.
type Monitor struct {
	mu       sync.Mutex
	probe    Probe
	interval time.Duration
	state    State
	streak   int

	// generation invalidates probes started before the latest Stop,
	// so a stale probe cannot mutate state after Stop returns.
	generation int
	cancel     context.CancelFunc

	// visible gates timer ticks. Ticks are skipped while it reports
	// false, preventing state thrash from a backgrounded host.
	visible func() bool

	subs []chan State
}

// NewMonitor creates a monitor in the Connecting state. It does not
// probe until Start or ForceCheck is called.
func NewMonitor(probe Probe, interval time.Duration) *Monitor {
	return &Monitor{
		probe:    probe,
		interval: interval,
		state:    StateConnecting,
		visible:  func() bool { return true },
	}
}

// SetVisibilityFunc installs a gate consulted before every timer tick.
// Must be called before Start.
func (m *Monitor) SetVisibilityFunc(f func() bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f != nil {
		m.visible = f
	}
}

// Start launches the polling loop: an immediate check, then one per
// interval. Calling Start on a running monitor restarts the loop.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	gen := m.generation
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	go m.loop(ctx, gen)
}

// Stop cancels the polling loop. Any probe already in flight is
// discarded; it cannot mutate state after Stop returns.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.generation++
}

func (m *Monitor) loop(ctx context.Context, gen int) {
	m.check(ctx, gen, true)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !m.visibleNow() {
				continue
			}
			m.check(ctx, gen, true)
		}
	}
}

func (m *Monitor) visibleNow() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible()
}

// ForceCheck runs one probe immediately. A non-silent check shows the
// user a check is underway by setting Connecting before the probe
// resolves; silent checks never touch state until a verdict exists.
func (m *Monitor) ForceCheck(ctx context.Context, silent bool) State {
	m.mu.Lock()
	gen := m.generation
	if !silent {
		m.setStateLocked(StateConnecting)
	}
	m.mu.Unlock()

	m.check(ctx, gen, silent)
	return m.State()
}

// check runs the probe and applies its verdict, unless the monitor was
// stopped or restarted while the probe was in flight.
func (m *Monitor) check(ctx context.Context, gen int, silent bool) {
	ok := m.probe(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		return
	}

	if ok {
		m.streak = 0
		m.setStateLocked(StateConnected)
		return
	}

	m.streak++
	if m.streak >= 2 {
		m.setStateLocked(StateDisconnected)
		return
	}

	// First failure: tolerate it. A silent check keeps the previous
	// state, except that Connecting is held at Connected so the first
	// poll after a reconnect attempt does not flap to Disconnected.
	if silent && m.state == StateConnecting {
		m.setStateLocked(StateConnected)
	}
	if !silent {
		// The explicit check set Connecting; hold at Connected until
		// a second failure confirms the outage.
		m.setStateLocked(StateConnected)
	}
}

// State returns the current connection state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel receiving every state change. Slow
// receivers miss updates rather than blocking the monitor.
func (m *Monitor) Subscribe() <-chan State {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan State, 8)
	m.subs = append(m.subs, ch)
	return ch
}

func (m *Monitor) setStateLocked(s State) {
	if m.state == s {
		return
	}
	m.state = s
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
		}
	}
}
