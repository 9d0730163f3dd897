// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/session"
)

func newModel() Model {
	return New(session.NewStore(nil))
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestLoginValidatesLocally(t *testing.T) {
	m := newModel()

	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Error("empty login form produced a command")
	}
	if m.errMsg == "" {
		t.Error("no validation error for empty login form")
	}
}

func TestRegisterValidatesPasswordLength(t *testing.T) {
	m := newModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != modeRegister {
		t.Fatal("ctrl+r did not switch to register")
	}

	m.inputs[fieldName].SetValue("Ada")
	m.inputs[fieldEmail].SetValue("a@b.com")
	m.inputs[fieldPassword].SetValue("short")

	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Error("short password submitted anyway")
	}
	if m.errMsg == "" {
		t.Error("no validation error for short password")
	}
}

func TestLoginSuccessEmitsAuthenticated(t *testing.T) {
	m := newModel()
	user := &model.User{ID: 1, Email: "a@b.com", IsActive: true}

	m, cmd := m.Update(LoginDoneMsg{User: user})
	if m.submitting {
		t.Error("submitting flag stuck")
	}
	if cmd == nil {
		t.Fatal("login success produced no command")
	}
	msg, ok := cmd().(AuthenticatedMsg)
	if !ok {
		t.Fatalf("login success produced %T, want AuthenticatedMsg", cmd())
	}
	if msg.User.Email != "a@b.com" {
		t.Errorf("AuthenticatedMsg.User.Email = %q", msg.User.Email)
	}
}

func TestLoginFailureShowsDetail(t *testing.T) {
	m := newModel()
	m.submitting = true

	m, cmd := m.Update(LoginDoneMsg{Err: errTest("Incorrect email or password")})
	if cmd != nil {
		t.Error("login failure produced a command")
	}
	if m.errMsg != "Incorrect email or password" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.submitting {
		t.Error("form still frozen after failure")
	}
}

func TestRegisterSuccessEmitsAuthenticated(t *testing.T) {
	m := newModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.submitting = true

	m, cmd := m.Update(RegisterDoneMsg{User: &model.User{Email: "a@b.com", IsActive: true}})
	if m.submitting {
		t.Error("form still frozen after registration")
	}
	if cmd == nil {
		t.Fatal("register success produced no command")
	}
	msg, ok := cmd().(AuthenticatedMsg)
	if !ok {
		t.Fatalf("register success produced %T, want AuthenticatedMsg", cmd())
	}
	if msg.User.Email != "a@b.com" {
		t.Errorf("AuthenticatedMsg.User.Email = %q", msg.User.Email)
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newModel()
	m.inputs[fieldEmail].SetValue("a@b.com")
	m.submitting = true

	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Error("enter while submitting produced a command")
	}
}

// errTest is a trivial error with a fixed message.
type errTest string

func (e errTest) Error() string { return string(e) }
