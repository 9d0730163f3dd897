// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/session"
)

func testApp() App {
	client := api.NewClient("http://127.0.0.1:1", &api.MemTokenStore{})
	return NewApp(client, session.NewStore(client))
}

func TestDismissKeyRemovesOldestToast(t *testing.T) {
	a := testApp()
	a.toasts.AddError("first")
	a.toasts.AddSuccess("second")

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	a = model.(App)

	toasts := a.toasts.Toasts()
	if len(toasts) != 1 {
		t.Fatalf("len(toasts) = %d after dismiss, want 1", len(toasts))
	}
	if toasts[0].Message != "second" {
		t.Errorf("remaining toast = %q, want the newer one", toasts[0].Message)
	}
}

func TestDismissKeyWithoutToastsIsNoOp(t *testing.T) {
	a := testApp()

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	a = model.(App)

	if a.toasts.HasToasts() {
		t.Error("dismiss with an empty queue created toasts")
	}
}
