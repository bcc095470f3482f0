// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the HTTP client for the askdb service.
// It implements the turn transport plus the connection, auth, and
// schema operations the CLI depends on; tests substitute mocks.
package backend

import (
	"context"

	"askdb/cli/internal/protocol"
)

// API defines service operations the CLI depends on.
type API interface {
	protocol.Transport

	// Health probes GET /health. Used by the connection monitor.
	Health(ctx context.Context) (DBStatus, error)
	// DBStatus fetches the current connection status without the
	// health wrapper.
	DBStatus(ctx context.Context) (DBStatus, error)
	// ConnectDB points the service at a database profile.
	ConnectDB(ctx context.Context, sessionID string, profile ConnectProfile) (DBStatus, error)
	// DisconnectDB drops the service's database connection.
	DisconnectDB(ctx context.Context) error
	// Login identifies the operator to the service.
	Login(ctx context.Context, sessionID, username, password string) (Account, error)
	// Me returns the identity and connection flags the service holds.
	Me(ctx context.Context) (Account, error)
	// Schema fetches the structured database schema. refresh forces a
	// live reload instead of the service's cached copy.
	Schema(ctx context.Context, refresh bool) (map[string]any, error)
}

// DBStatus mirrors the service's database status payload.
type DBStatus struct {
	Connected bool   `json:"connected"`
	Database  string `json:"database"`
	Host      string `json:"host"`
	User      string `json:"user"`
	Error     string `json:"error"`
}

// ConnectProfile is the database profile sent to the connect endpoint.
// Either DSN or the discrete fields may be set; the service prefers DSN.
type ConnectProfile struct {
	Name     string `json:"name,omitempty"`
	DSN      string `json:"dsn,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
}

// Account is the identity payload from login and me.
type Account struct {
	User      string `json:"user"`
	Connected bool   `json:"connected"`
}
