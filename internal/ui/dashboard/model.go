// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard implements the project list: browsing, creating,
// editing, and deleting the user's projects.
package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
)

// Gateway is the slice of the API client the dashboard needs.
type Gateway interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, name, description, systemPrompt string) (*model.Project, error)
	UpdateProject(ctx context.Context, id int64, name, description, systemPrompt string) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// mode is the dashboard's interaction mode.
type mode int

const (
	modeList          mode = iota // browsing the project list
	modeForm                      // create/edit form
	modeConfirmDelete             // delete confirmation
)

// formField indexes the focusable form inputs.
type formField int

const (
	fieldName formField = iota
	fieldDescription
	fieldSystemPrompt
	fieldCount
)

// Model is the dashboard view.
type Model struct {
	gateway Gateway

	projects []model.Project
	cursor   int
	loading  bool

	mode    mode
	editing *model.Project // nil when the form creates a new project

	inputs  [fieldCount]textinput.Model
	focused formField
	formErr string

	userName string
	gen      int64
	width    int
	height   int
}

// viewGen issues generations across every dashboard instance, so a list
// fetched by a dashboard torn down at logout never lands in the one mounted
// after the next login.
var viewGen atomic.Int64

// New creates the dashboard for the given display name.
func New(g Gateway, userName string) Model {
	var inputs [fieldCount]textinput.Model

	name := textinput.New()
	name.Placeholder = "Project name"
	name.CharLimit = model.MaxProjectNameLen
	inputs[fieldName] = name

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	inputs[fieldDescription] = desc

	prompt := textinput.New()
	prompt.Placeholder = "System prompt (optional)"
	inputs[fieldSystemPrompt] = prompt

	return Model{
		gateway:  g,
		inputs:   inputs,
		userName: userName,
		loading:  true,
		gen:      viewGen.Add(1),
	}
}

// Init starts the initial project fetch.
func (m Model) Init() tea.Cmd {
	return m.loadProjects()
}

// Refresh re-fetches the project list (used when returning from a chat).
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return m.loadProjects()
}

func (m *Model) loadProjects() tea.Cmd {
	gen := m.gen
	g := m.gateway
	return func() tea.Msg {
		projects, err := g.ListProjects(context.Background())
		return ProjectsLoadedMsg{Gen: gen, Projects: projects, Err: err}
	}
}

func (m *Model) saveProject() tea.Cmd {
	gen := m.gen
	g := m.gateway
	editing := m.editing
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	desc := strings.TrimSpace(m.inputs[fieldDescription].Value())
	prompt := strings.TrimSpace(m.inputs[fieldSystemPrompt].Value())

	return func() tea.Msg {
		if editing != nil {
			p, err := g.UpdateProject(context.Background(), editing.ID, name, desc, prompt)
			return ProjectSavedMsg{Gen: gen, Project: p, Err: err}
		}
		p, err := g.CreateProject(context.Background(), name, desc, prompt)
		return ProjectSavedMsg{Gen: gen, Project: p, Created: true, Err: err}
	}
}

func (m *Model) deleteProject(id int64) tea.Cmd {
	gen := m.gen
	g := m.gateway
	return func() tea.Msg {
		err := g.DeleteProject(context.Background(), id)
		return ProjectDeletedMsg{Gen: gen, ID: id, Err: err}
	}
}

// Selected returns the project under the cursor, or nil with an empty list.
func (m *Model) Selected() *model.Project {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return nil
	}
	return &m.projects[m.cursor]
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 20
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.handleFormKey(msg)
		case modeConfirmDelete:
			return m.handleConfirmKey(msg)
		default:
			return m.handleListKey(msg)
		}

	case ProjectsLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				// The forced-logout path notifies; no view-level toast.
				return m, nil
			}
			return m, toastCmd("Could not load projects: "+errorText(msg.Err), true)
		}
		m.projects = msg.Projects
		if m.cursor >= len(m.projects) {
			m.cursor = len(m.projects) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case ProjectSavedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return m, nil
			}
			m.formErr = errorText(msg.Err)
			return m, nil
		}
		m.mode = modeList
		m.editing = nil
		verb := "updated"
		if msg.Created {
			verb = "created"
		}
		return m, tea.Batch(
			toastCmd("Project "+msg.Project.Name+" "+verb, false),
			m.Refresh(),
		)

	case ProjectDeletedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return m, nil
			}
			return m, toastCmd("Delete failed: "+errorText(msg.Err), true)
		}
		return m, tea.Batch(toastCmd("Project deleted", false), m.Refresh())
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "enter":
		if p := m.Selected(); p != nil {
			project := *p
			return m, func() tea.Msg { return OpenProjectMsg{Project: project} }
		}
	case "n":
		return m.openForm(nil)
	case "e":
		if p := m.Selected(); p != nil {
			return m.openForm(p)
		}
	case "d":
		if m.Selected() != nil {
			m.mode = modeConfirmDelete
		}
	case "r":
		return m, m.Refresh()
	case "ctrl+l":
		return m, func() tea.Msg { return LogoutRequestMsg{} }
	}
	return m, nil
}

func (m Model) openForm(editing *model.Project) (Model, tea.Cmd) {
	m.mode = modeForm
	m.formErr = ""
	m.focused = fieldName
	if editing != nil {
		p := *editing
		m.editing = &p
		m.inputs[fieldName].SetValue(p.Name)
		m.inputs[fieldDescription].SetValue(p.Description)
		m.inputs[fieldSystemPrompt].SetValue(p.SystemPrompt)
	} else {
		m.editing = nil
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m, m.inputs[fieldName].Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.editing = nil
		return m, nil

	case "tab", "down":
		return m.focusField((m.focused + 1) % fieldCount)

	case "shift+tab", "up":
		return m.focusField((m.focused + fieldCount - 1) % fieldCount)

	case "enter":
		name := strings.TrimSpace(m.inputs[fieldName].Value())
		if name == "" {
			m.formErr = "Project name is required"
			return m, nil
		}
		m.formErr = ""
		return m, m.saveProject()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) focusField(f formField) (Model, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = f
	return m, m.inputs[f].Focus()
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		if p := m.Selected(); p != nil {
			return m, m.deleteProject(p.ID)
		}
	case "n", "N", "esc":
		m.mode = modeList
	}
	return m, nil
}

// toastCmd asks the parent to surface a notification.
func toastCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, IsError: isError}
	}
}

// errorText returns the message shown to the user for a failed call: the
// service's detail when there is one, a generic notice otherwise. 401s never
// reach here; they are handled by the forced-logout path.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "Network error"
}
