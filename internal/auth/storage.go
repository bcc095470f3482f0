// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth manages the operator's login state. The askdb service is
// tokenless: login just registers who is operating the session, so the
// only persisted secret-adjacent data is the serialized state itself,
// kept in the OS keychain alongside the connection profile.
package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"askdb/cli/internal/keychain"
)

var verboseAuth = os.Getenv("ASKDB_VERBOSE") == "1"

// State represents persisted login state for the current operator.
type State struct {
	LoggedIn bool   `json:"logged_in"`
	Account  string `json:"account"`
}

// Load reads the login state from the keychain. Missing state yields
// the zero value.
func Load() (State, error) {
	var s State
	km, err := keychain.GetManager()
	if err != nil {
		if verboseAuth {
			fmt.Printf("[DEBUG] auth.Load: GetManager failed: %v\n", err)
		}
		return s, err
	}

	data, err := km.LoadAuthState()
	if err != nil || len(data) == 0 {
		// Not stored yet; stay logged out.
		return s, nil
	}

	if err := json.Unmarshal(data, &s); err != nil {
		if verboseAuth {
			fmt.Printf("[DEBUG] auth.Load: unmarshal failed: %v\n", err)
		}
		return s, err
	}
	return s, nil
}

// Save writes the login state to the keychain.
func Save(s State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return km.SaveAuthState(b)
}

// Clear removes the login state from the keychain.
func Clear() error {
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return km.ClearAuthState()
}

// IsLoggedIn reports whether the operator is considered logged in.
func IsLoggedIn() bool {
	st, err := Load()
	return err == nil && st.LoggedIn
}
