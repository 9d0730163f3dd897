// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui wires the parley screens into one Bubble Tea program. The App
// model owns the session store and mounts the view matching the session
// state: a splash while the stored token is verified, the auth forms when
// logged out, and the dashboard or a conversation once a session exists.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/session"
	"github.com/jeranaias/parley-tui/internal/ui/auth"
	"github.com/jeranaias/parley-tui/internal/ui/chat"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/dashboard"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// screen selects the mounted authenticated view.
type screen int

const (
	screenDashboard screen = iota
	screenChat
)

// BootstrapDoneMsg reports the startup session check.
type BootstrapDoneMsg struct {
	State session.State
}

// ForcedLogoutMsg is sent from outside the program when the service rejects
// the bearer token mid-session.
type ForcedLogoutMsg struct{}

// App is the root model.
type App struct {
	client *api.Client
	store  *session.Store
	toasts *components.ToastManager

	auth      auth.Model
	dashboard dashboard.Model
	chat      chat.Model

	screen screen
	width  int
	height int
}

// NewApp creates the root model in the Bootstrapping state.
func NewApp(client *api.Client, store *session.Store) App {
	return App{
		client: client,
		store:  store,
		toasts: components.NewToastManager(),
		auth:   auth.New(store),
	}
}

// Init starts the bootstrap check and the toast ticker.
func (a App) Init() tea.Cmd {
	store := a.store
	bootstrap := func() tea.Msg {
		return BootstrapDoneMsg{State: store.Bootstrap(context.Background())}
	}
	return tea.Batch(bootstrap, components.ToastTickCmd(), a.auth.Init())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the mounted view.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		cmds = append(cmds, cmd)
		a.dashboard, cmd = a.dashboard.Update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+t":
			// Dismiss the oldest toast without waiting for expiry.
			if a.toasts.HasToasts() {
				a.toasts.DismissOldest()
				return a, nil
			}
		}

	case components.ToastTickMsg:
		a.toasts.Expire(msg.Time)
		return a, components.ToastTickCmd()

	case BootstrapDoneMsg:
		if msg.State == session.StateAuthenticated {
			return a.mountDashboard()
		}
		return a, nil

	case ForcedLogoutMsg:
		return a.forceLogout()

	case auth.AuthenticatedMsg:
		return a.mountDashboard()

	case dashboard.OpenProjectMsg:
		a.screen = screenChat
		a.chat = chat.New(a.client, msg.Project)
		cmd := a.chat.Init()
		if a.width > 0 {
			var resize tea.Cmd
			a.chat, resize = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
			cmd = tea.Batch(cmd, resize)
		}
		return a, cmd

	case dashboard.LogoutRequestMsg:
		if err := a.store.Logout(); err != nil {
			a.toasts.AddError("Logout failed: " + err.Error())
		}
		a.screen = screenDashboard
		a.auth = auth.New(a.store)
		return a, a.auth.Init()

	case chat.BackMsg:
		a.screen = screenDashboard
		return a, a.dashboard.Refresh()

	case chat.ToastMsg:
		a.addToast(msg.Message, msg.IsError)
		return a, nil

	case dashboard.ToastMsg:
		a.addToast(msg.Message, msg.IsError)
		return a, nil
	}

	return a.routeToMounted(msg)
}

// routeToMounted forwards a message to whichever view is on screen.
func (a App) routeToMounted(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.store.State() {
	case session.StateUnauthenticated:
		a.auth, cmd = a.auth.Update(msg)
	case session.StateAuthenticated:
		if a.screen == screenChat {
			a.chat, cmd = a.chat.Update(msg)
		} else {
			a.dashboard, cmd = a.dashboard.Update(msg)
		}
	}
	return a, cmd
}

func (a App) mountDashboard() (tea.Model, tea.Cmd) {
	userName := ""
	if u := a.store.User(); u != nil {
		userName = u.DisplayName()
	}
	a.screen = screenDashboard
	a.dashboard = dashboard.New(a.client, userName)
	cmd := a.dashboard.Init()
	if a.width > 0 {
		var resize tea.Cmd
		a.dashboard, resize = a.dashboard.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmd = tea.Batch(cmd, resize)
	}
	return a, cmd
}

// forceLogout tears down the authenticated views after the service rejected
// the token. The conversation view is closed first so any reply still in
// flight is dropped by its generation check.
func (a App) forceLogout() (tea.Model, tea.Cmd) {
	a.chat.Close()
	a.store.ForceLogout()
	a.screen = screenDashboard
	a.auth = auth.New(a.store)
	a.toasts.AddError("Session expired. Log in again.")
	return a, a.auth.Init()
}

func (a *App) addToast(message string, isError bool) {
	if isError {
		a.toasts.AddError(message)
	} else {
		a.toasts.AddSuccess(message)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the mounted screen with the toast stack overlaid.
func (a App) View() string {
	var view string
	switch a.store.State() {
	case session.StateBootstrapping:
		view = a.viewSplash()
	case session.StateUnauthenticated:
		view = a.auth.View()
	default:
		if a.screen == screenChat {
			view = a.chat.View()
		} else {
			view = a.dashboard.View()
		}
	}

	if a.toasts.HasToasts() && a.width > 0 {
		view = components.OverlayToasts(view, a.toasts.Toasts(), a.width)
	}
	return view
}

func (a App) viewSplash() string {
	splash := styles.Title.Render("parley") + "\n" +
		styles.Help.Render("Checking session...")
	if a.width > 0 && a.height > 0 {
		return placeCenter(a.width, a.height, splash)
	}
	return splash
}
