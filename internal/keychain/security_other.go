// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !darwin

package keychain

import "errors"

// newSecurityBackend is only available on macOS. Other platforms go
// through the keyring library directly.
func newSecurityBackend() (keychainBackend, error) {
	return nil, errors.New("native security backend unavailable")
}
