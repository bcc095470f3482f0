// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"

	"askdb/cli/internal/backend"
)

// Service centralizes login operations against the service and local
// keychain state.
type Service struct {
	be backend.API
}

// NewService constructs an auth Service over the given backend.
func NewService(be backend.API) *Service {
	return &Service{be: be}
}

// Login identifies the operator to the service and persists the state
// locally on success.
func (s *Service) Login(ctx context.Context, sessionID, username, password string) (backend.Account, error) {
	account, err := s.be.Login(ctx, sessionID, username, password)
	if err != nil {
		return backend.Account{}, err
	}
	if err := Save(State{LoggedIn: true, Account: account.User}); err != nil {
		return account, fmt.Errorf("logged in, but saving state failed: %w", err)
	}
	return account, nil
}

// WhoAmI returns the identity the service holds, falling back to the
// locally stored account when the service is unreachable.
func (s *Service) WhoAmI(ctx context.Context) (backend.Account, error) {
	account, err := s.be.Me(ctx)
	if err == nil && account.User != "" {
		return account, nil
	}

	st, localErr := Load()
	if localErr == nil && st.LoggedIn {
		return backend.Account{User: st.Account}, nil
	}
	if err != nil {
		return backend.Account{}, err
	}
	return backend.Account{}, fmt.Errorf("not logged in")
}

// Logout clears local state and asks the service to drop its database
// connection. The disconnect is best-effort: a failure there never
// blocks the local logout.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.be.DisconnectDB(ctx); err != nil && verboseAuth {
		fmt.Printf("[DEBUG] auth.Logout: disconnect failed: %v\n", err)
	}
	return Clear()
}
