// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.API.URL != DefaultAPIURL {
		t.Errorf("Expected default API URL %q, got %q", DefaultAPIURL, cfg.API.URL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.API.URL = "" },
		func(c *Config) { c.API.URL = "ftp://example.com" },
		func(c *Config) { c.API.URL = "http://" },
		func(c *Config) { c.UI.Theme = "solarized" },
		func(c *Config) { c.Log.Level = "trace" },
	}
	for i, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Case %d: expected validation error, got nil", i)
		}
	}
}

func TestValidateStripsTrailingSlash(t *testing.T) {
	cfg := Default()
	cfg.API.URL = "http://example.com:8000/"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.API.URL != "http://example.com:8000" {
		t.Errorf("Trailing slash should be stripped, got %q", cfg.API.URL)
	}
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
url = "https://parley.example.com"

[ui]
theme = "light"
compact_mode = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Default()
	if err := LoadFrom(cfg, path); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.URL != "https://parley.example.com" {
		t.Errorf("Unexpected API URL: %q", cfg.API.URL)
	}
	if cfg.UI.Theme != "light" || !cfg.UI.CompactMode {
		t.Errorf("Unexpected UI config: %+v", cfg.UI)
	}
	// Unset fields keep defaults.
	if cfg.Log.Level != "warn" {
		t.Errorf("Unset log level should keep default, got %q", cfg.Log.Level)
	}
}

func TestLoadFromFixesPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nurl = \"http://localhost:8000\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Default()
	if err := LoadFrom(cfg, path); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected permissions tightened to 0600, got %o", info.Mode().Perm())
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_API_URL", "http://10.0.0.5:9000")
	t.Setenv("PARLEY_THEME", "auto")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.URL != "http://10.0.0.5:9000" {
		t.Errorf("Env override not applied: %q", cfg.API.URL)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Env override not applied: %q", cfg.UI.Theme)
	}
}
