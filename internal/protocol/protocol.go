// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package protocol implements the turn loop against the askdb service:
// submit a question, follow any human-input round-trips, and return the
// terminal result. Connectivity gating, session tagging, and the resume
// ceiling all live here.
package protocol

import (
	"context"
	"fmt"

	"askdb/cli/internal/errors"
	"askdb/cli/internal/health"
	"askdb/cli/internal/interrupt"
	"askdb/cli/internal/session"
)

// maxResumeRoundTrips bounds how many needs_human_input replies a
// single turn will follow before giving up on the conversation.
const maxResumeRoundTrips = 5

// Result is the terminal payload of a turn.
type Result struct {
	Response      string
	Rows          []map[string]any
	ChartImage    string
	FromCache     bool
	ExecutionTime float64
}

// Reply is the service's answer to a submit or resume call: exactly one
// of OK or NeedsInput is set.
type Reply struct {
	OK         *Result
	NeedsInput *interrupt.Interrupt
}

// Transport sends turn and resume requests to the service.
type Transport interface {
	SubmitTurn(ctx context.Context, sessionID, message string) (Reply, error)
	Resume(ctx context.Context, sessionID string, decision interrupt.Decision) (Reply, error)
}

// Gate reports connection state before a turn is allowed out.
type Gate interface {
	State() health.State
}

// Prompter obtains a human decision for a recognized interrupt. It is
// called from the turn goroutine and may block on user input.
type Prompter interface {
	Decide(ctx context.Context, it interrupt.Interrupt) interrupt.Decision
}

// Recorder receives each completed turn for history keeping.
type Recorder interface {
	Record(question string, res Result)
}

// Client drives turns through the transport. Safe for sequential use;
// one turn at a time.
type Client struct {
	transport Transport
	gate      Gate
	sessions  *session.Controller
	broker    *interrupt.Broker
	prompter  Prompter
	recorder  Recorder
}

// NewClient wires the turn loop. recorder may be nil when no history is
// wanted.
func NewClient(t Transport, g Gate, s *session.Controller, b *interrupt.Broker, p Prompter, r Recorder) *Client {
	return &Client{
		transport: t,
		gate:      g,
		sessions:  s,
		broker:    b,
		prompter:  p,
		recorder:  r,
	}
}

// Submit runs one full turn: gate check, initial request, and up to
// maxResumeRoundTrips human-input round-trips. Any interrupt left
// pending by an abandoned previous turn is cancelled first so its
// stale continuation cannot race this turn's session id.
func (c *Client) Submit(ctx context.Context, message string) (Result, error) {
	c.broker.CancelPending()

	if state := c.gate.State(); state != health.StateConnected {
		return Result{}, errors.New(errors.ConnectivityGate,
			fmt.Sprintf("service is %s; check the connection and try again", state))
	}

	sessionID := c.sessions.Current()

	reply, err := c.transport.SubmitTurn(ctx, sessionID, message)
	if err != nil {
		return Result{}, errors.Wrap(errors.TransportFailed, "turn request failed", err)
	}

	for resumes := 0; ; resumes++ {
		if reply.OK != nil {
			if c.recorder != nil {
				c.recorder.Record(message, *reply.OK)
			}
			return *reply.OK, nil
		}
		if reply.NeedsInput == nil {
			return Result{}, errors.New(errors.TransportFailed, "service reply had neither result nor interrupt")
		}
		if resumes >= maxResumeRoundTrips {
			return Result{}, errors.New(errors.ProtocolExhausted,
				fmt.Sprintf("service kept requesting input after %d round-trips", maxResumeRoundTrips))
		}

		decision, err := c.decide(ctx, *reply.NeedsInput)
		if err != nil {
			return Result{}, err
		}

		reply, err = c.transport.Resume(ctx, sessionID, decision)
		if err != nil {
			return Result{}, errors.Wrap(errors.TransportFailed, "resume request failed", err)
		}
	}
}

// decide routes one interrupt through the broker and returns the
// human's answer. Unrecognized interrupts resolve to an empty decision
// immediately so the turn proceeds instead of stalling.
func (c *Client) decide(ctx context.Context, it interrupt.Interrupt) (interrupt.Decision, error) {
	ch, err := c.broker.Await(it)
	if err != nil {
		return nil, errors.Wrap(errors.InterruptCancelled, "interrupt slot busy", err)
	}

	go func() {
		if it.Kind == interrupt.TypeUnknown || c.prompter == nil {
			c.broker.Resolve(interrupt.EmptyDecision())
			return
		}
		c.broker.Resolve(c.prompter.Decide(ctx, it))
	}()

	select {
	case d := <-ch:
		return d, nil
	case <-ctx.Done():
		c.broker.CancelPending()
		return nil, errors.Wrap(errors.InterruptCancelled, "turn cancelled while awaiting a decision", ctx.Err())
	}
}

// Reset rotates the session and cancels any pending interrupt. Used on
// explicit context reset and on logout.
func (c *Client) Reset() string {
	c.broker.CancelPending()
	return c.sessions.Rotate()
}
