// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// securityBackend talks to the macOS Keychain through the security(1)
// command line tool. This avoids cgo and works on hardened macOS
// releases where the keyring library's Keychain backend is flaky.
type securityBackend struct {
	account string
}

func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "askdb"
	}
	return &securityBackend{account: user}, nil
}

func (b *securityBackend) Set(key, value string) error {
	// -U updates the item in place when it already exists
	cmd := exec.Command("security", "add-generic-password",
		"-a", b.account,
		"-s", ServiceName+"."+key,
		"-w", value,
		"-U")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("keychain write failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func (b *securityBackend) Get(key string) (string, error) {
	cmd := exec.Command("security", "find-generic-password",
		"-a", b.account,
		"-s", ServiceName+"."+key,
		"-w")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("keychain item not found: %s", key)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func (b *securityBackend) Delete(key string) error {
	cmd := exec.Command("security", "delete-generic-password",
		"-a", b.account,
		"-s", ServiceName+"."+key)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("keychain delete failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}
