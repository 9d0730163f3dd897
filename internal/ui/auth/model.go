// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the login and registration forms.
package auth

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/session"
)

// mode selects between the two forms.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// LoginDoneMsg reports a login attempt.
type LoginDoneMsg struct {
	User *model.User
	Err  error
}

// RegisterDoneMsg reports a registration attempt.
type RegisterDoneMsg struct {
	User *model.User
	Err  error
}

// AuthenticatedMsg tells the parent a session now exists.
type AuthenticatedMsg struct {
	User *model.User
}

// field indexes into the form inputs. Login uses email and password;
// register adds the name in front.
type field int

const (
	fieldName field = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// Model is the authentication view.
type Model struct {
	store *session.Store

	mode    mode
	inputs  [fieldCount]textinput.Model
	focused field

	submitting bool
	errMsg     string

	width  int
	height int
}

// New creates the auth view showing the login form.
func New(store *session.Store) Model {
	var inputs [fieldCount]textinput.Model

	name := textinput.New()
	name.Placeholder = "Full name"
	inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "Email"
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	inputs[fieldPassword] = password

	m := Model{store: store, mode: modeLogin, focused: fieldEmail}
	m.inputs = inputs
	m.inputs[fieldEmail].Focus()
	return m
}

// Init returns the cursor blink command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// firstField is the topmost field of the active form.
func (m Model) firstField() field {
	if m.mode == modeRegister {
		return fieldName
	}
	return fieldEmail
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the auth view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = 40
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LoginDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = errorMessage(msg.Err)
			return m, nil
		}
		user := msg.User
		return m, func() tea.Msg { return AuthenticatedMsg{User: user} }

	case RegisterDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = errorMessage(msg.Err)
			return m, nil
		}
		// Registration issues a session just like login.
		user := msg.User
		return m, func() tea.Msg { return AuthenticatedMsg{User: user} }
	}

	// Cursor blink and other component messages go to the focused input.
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		// A submit is in flight; the form is frozen until it resolves.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m.cycleFocus(1)
	case "shift+tab", "up":
		return m.cycleFocus(-1)
	case "ctrl+r":
		m.mode = modeRegister
		m.errMsg = ""
		return m.focusField(fieldName)
	case "ctrl+b", "esc":
		if m.mode == modeRegister {
			m.mode = modeLogin
			m.errMsg = ""
			return m.focusField(fieldEmail)
		}
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) cycleFocus(dir int) (Model, tea.Cmd) {
	first := m.firstField()
	count := int(fieldCount - first)
	cur := int(m.focused - first)
	next := field(int(first) + ((cur+dir)%count+count)%count)
	return m.focusField(next)
}

func (m Model) focusField(f field) (Model, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = f
	return m, m.inputs[f].Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	if m.mode == modeRegister {
		name := strings.TrimSpace(m.inputs[fieldName].Value())
		if name == "" || email == "" || password == "" {
			m.errMsg = "All fields are required"
			return m, nil
		}
		if len(password) < session.MinPasswordLen {
			m.errMsg = "Password must be at least 6 characters"
			return m, nil
		}
		m.submitting = true
		m.errMsg = ""
		store := m.store
		return m, func() tea.Msg {
			user, err := store.Register(context.Background(), name, email, password)
			return RegisterDoneMsg{User: user, Err: err}
		}
	}

	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""
	store := m.store
	return m, func() tea.Msg {
		user, err := store.Login(context.Background(), email, password)
		return LoginDoneMsg{User: user, Err: err}
	}
}

// errorMessage returns the text shown under the form: the service's detail
// when there is one, the plain error text for local validation, a generic
// notice for transport failures.
func errorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if errors.Is(err, api.ErrRateLimited) || isLocalError(err) {
		return err.Error()
	}
	return "Network error"
}

// isLocalError reports whether the error was produced before any network
// call (validation in the session store).
func isLocalError(err error) bool {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return false
	}
	// url.Error wraps transport failures from net/http.
	var urlErr *url.Error
	return !errors.As(err, &urlErr)
}
