// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. This enables better error categorization, logging,
// and user experience by providing context-aware error information.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errors

import (
	goerrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConnectivityGate indicates a turn was rejected because the connection
	// monitor does not report a healthy channel. No network call was made.
	ConnectivityGate Kind = "connectivity_gate"
	// TransportFailed indicates a network or non-2xx failure talking to the service.
	TransportFailed Kind = "transport_failed"
	// ProtocolExhausted indicates the per-turn resume guard was exceeded.
	ProtocolExhausted Kind = "protocol_exhausted"
	// InterruptCancelled indicates a pending interrupt was torn down
	// before the user resolved it.
	InterruptCancelled Kind = "interrupt_cancelled"
	// ProfileInvalid indicates a connection profile could not be parsed or verified.
	ProfileInvalid Kind = "profile_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind carried by err, or "" when err has none.
func KindOf(err error) Kind {
	var e *E
	if goerrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
