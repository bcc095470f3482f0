// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package health

import (
	"context"
	"testing"
	"time"
)

// scriptedProbe returns the scripted results in order, repeating the
// last one when the script runs out.
type scriptedProbe struct {
	results []bool
	calls   int
}

func (p *scriptedProbe) probe(_ context.Context) bool {
	i := p.calls
	p.calls++
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	return p.results[i]
}

func TestForceCheckSuccess(t *testing.T) {
	p := &scriptedProbe{results: []bool{true}}
	m := NewMonitor(p.probe, time.Minute)

	if got := m.ForceCheck(context.Background(), false); got != StateConnected {
		t.Errorf("state = %q, want %q", got, StateConnected)
	}
}

func TestSingleFailureIsTolerated(t *testing.T) {
	p := &scriptedProbe{results: []bool{true, false}}
	m := NewMonitor(p.probe, time.Minute)

	m.ForceCheck(context.Background(), true)
	if got := m.ForceCheck(context.Background(), true); got != StateConnected {
		t.Errorf("state after one failure = %q, want %q", got, StateConnected)
	}
}

func TestTwoConsecutiveFailuresDisconnect(t *testing.T) {
	p := &scriptedProbe{results: []bool{false, false}}
	m := NewMonitor(p.probe, time.Minute)

	m.ForceCheck(context.Background(), true)
	if got := m.ForceCheck(context.Background(), true); got != StateDisconnected {
		t.Errorf("state after two failures = %q, want %q", got, StateDisconnected)
	}
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	p := &scriptedProbe{results: []bool{false, true, false}}
	m := NewMonitor(p.probe, time.Minute)

	ctx := context.Background()
	m.ForceCheck(ctx, true)
	m.ForceCheck(ctx, true)
	// One old failure plus one new failure must not disconnect: the
	// success in between reset the streak.
	if got := m.ForceCheck(ctx, true); got != StateConnected {
		t.Errorf("state = %q, want %q", got, StateConnected)
	}
}

func TestSilentFirstFailureHoldsConnectingAtConnected(t *testing.T) {
	p := &scriptedProbe{results: []bool{false}}
	m := NewMonitor(p.probe, time.Minute)

	// Initial state is Connecting; a single silent failure must not
	// flap to Disconnected.
	if got := m.ForceCheck(context.Background(), true); got != StateConnected {
		t.Errorf("state = %q, want %q", got, StateConnected)
	}
}

func TestRecoveryAfterDisconnect(t *testing.T) {
	p := &scriptedProbe{results: []bool{false, false, true}}
	m := NewMonitor(p.probe, time.Minute)

	ctx := context.Background()
	m.ForceCheck(ctx, true)
	m.ForceCheck(ctx, true)
	if got := m.ForceCheck(ctx, false); got != StateConnected {
		t.Errorf("state after recovery = %q, want %q", got, StateConnected)
	}
}

func TestStopDiscardsInFlightProbe(t *testing.T) {
	release := make(chan struct{})
	probe := func(_ context.Context) bool {
		<-release
		return true
	}
	m := NewMonitor(probe, time.Minute)

	done := make(chan State, 1)
	go func() {
		done <- m.ForceCheck(context.Background(), true)
	}()

	// Stop while the probe is blocked; its eventual verdict must not
	// mutate state.
	time.Sleep(10 * time.Millisecond)
	m.Stop()
	close(release)
	<-done

	if got := m.State(); got == StateConnected {
		t.Errorf("stale probe mutated state to %q after Stop", got)
	}
}

func TestSubscribeSeesTransitions(t *testing.T) {
	p := &scriptedProbe{results: []bool{true, false, false}}
	m := NewMonitor(p.probe, time.Minute)
	ch := m.Subscribe()

	ctx := context.Background()
	m.ForceCheck(ctx, true)
	m.ForceCheck(ctx, true)
	m.ForceCheck(ctx, true)

	var got []State
	for {
		select {
		case s := <-ch:
			got = append(got, s)
			continue
		default:
		}
		break
	}

	want := []State{StateConnected, StateDisconnected}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, got[i], want[i])
		}
	}
}
