// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import "testing"

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ASKDB_SERVICE_URL", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ServiceURL != DefaultServiceURL {
		t.Errorf("service URL = %q, want %q", c.ServiceURL, DefaultServiceURL)
	}
	if c.ProbeIntervalSeconds <= 0 || c.HistoryLimit <= 0 {
		t.Errorf("defaults not filled: %+v", c)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ASKDB_SERVICE_URL", "")

	want := Config{
		ServiceURL:           "http://db-agent:9000",
		LogLevel:             "debug",
		ProbeIntervalSeconds: 5,
		HistoryLimit:         10,
	}
	if err := Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestEnvOverridesServiceURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ASKDB_SERVICE_URL", "http://other:8000/")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ServiceURL != "http://other:8000" {
		t.Errorf("service URL = %q, want env override without trailing slash", c.ServiceURL)
	}
}
