// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package profile manages the saved database connection profile: DSN
// normalization, direct reachability verification, and keychain
// persistence. The service receives the profile on connect; the local
// copy lets the CLI reconnect without re-prompting.
package profile

import (
	"context"
	"strconv"
	"time"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/dsn"
	"askdb/cli/internal/errors"
	"askdb/cli/internal/keychain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// verifyTimeout bounds the direct reachability ping.
const verifyTimeout = 5 * time.Second

// Profile is a named database connection target.
type Profile struct {
	Name string
	Info *dsn.Info
}

// FromDSN builds a profile from a raw connection string.
func FromDSN(name, rawDSN string) (*Profile, error) {
	info, err := dsn.Parse(rawDSN)
	if err != nil {
		return nil, errors.Wrap(errors.ProfileInvalid, "invalid connection string", err)
	}
	return &Profile{Name: name, Info: info}, nil
}

// FromParts builds a profile from discrete connection fields.
func FromParts(name, host, port, database, user, password string) (*Profile, error) {
	info, err := dsn.FromParts(host, port, database, user, password)
	if err != nil {
		return nil, errors.Wrap(errors.ProfileInvalid, "invalid connection fields", err)
	}
	return &Profile{Name: name, Info: info}, nil
}

// DSN returns the normalized connection string.
func (p *Profile) DSN() string {
	return p.Info.URL()
}

// ConnectProfile converts the profile into the payload the service's
// connect endpoint expects.
func (p *Profile) ConnectProfile() backend.ConnectProfile {
	port, _ := strconv.Atoi(p.Info.Port)
	return backend.ConnectProfile{
		Name:     p.Name,
		DSN:      p.DSN(),
		Host:     p.Info.Host,
		Port:     port,
		Database: p.Info.Database,
		User:     p.Info.User,
		Password: p.Info.Password,
	}
}

// Verify pings the database directly, catching unreachable hosts and
// bad credentials before the profile is handed to the service.
func Verify(ctx context.Context, connString string) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return errors.Wrap(errors.ProfileInvalid, "invalid connection string", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return errors.Wrap(errors.ProfileInvalid, "database is not reachable", err)
	}
	return nil
}

// Save stores the profile in the OS keychain.
func Save(p *Profile) error {
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return km.SaveProfile(p.Name, p.DSN())
}

// Load returns the saved profile, or nil when none is stored.
func Load() (*Profile, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return nil, err
	}
	raw, err := km.LoadProfileDSN()
	if err != nil || raw == "" {
		return nil, nil
	}
	info, err := dsn.Parse(raw)
	if err != nil {
		// A stored DSN that no longer parses is treated as absent.
		return nil, nil
	}
	return &Profile{Name: km.LoadProfileName(), Info: info}, nil
}

// Clear removes the saved profile from the keychain.
func Clear() error {
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return km.ClearProfile()
}
