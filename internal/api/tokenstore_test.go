// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("Load() on missing file = (%q, %v), want empty", tok, err)
	}

	if err := store.Save("tok-xyz"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	tok, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tok != "tok-xyz" {
		t.Errorf("Load() = %q, want tok-xyz", tok)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("token file mode = %o, want 0600", perm)
		}
	}
}

func TestFileTokenStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	// Clearing an empty store is a no-op.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}

	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("Load() after Clear() = %q, want empty", tok)
	}
}
