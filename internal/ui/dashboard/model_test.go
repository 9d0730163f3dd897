// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
)

type fakeGateway struct {
	projects []model.Project
	listErr  error
	deleted  []int64
}

func (f *fakeGateway) ListProjects(ctx context.Context) ([]model.Project, error) {
	return f.projects, f.listErr
}

func (f *fakeGateway) CreateProject(ctx context.Context, name, description, systemPrompt string) (*model.Project, error) {
	return &model.Project{ID: 99, Name: name}, nil
}

func (f *fakeGateway) UpdateProject(ctx context.Context, id int64, name, description, systemPrompt string) (*model.Project, error) {
	return &model.Project{ID: id, Name: name}, nil
}

func (f *fakeGateway) DeleteProject(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loaded(m Model, projects ...model.Project) Model {
	m, _ = m.Update(ProjectsLoadedMsg{Gen: m.gen, Projects: projects})
	return m
}

func TestCursorNavigation(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m, model.Project{ID: 1, Name: "a"}, model.Project{ID: 2, Name: "b"})

	if m.Selected().ID != 1 {
		t.Fatalf("initial selection ID = %d, want 1", m.Selected().ID)
	}
	m, _ = m.Update(key("j"))
	if m.Selected().ID != 2 {
		t.Errorf("after j, selection ID = %d, want 2", m.Selected().ID)
	}
	m, _ = m.Update(key("j")) // clamped at bottom
	if m.Selected().ID != 2 {
		t.Errorf("cursor ran past the end")
	}
	m, _ = m.Update(key("k"))
	if m.Selected().ID != 1 {
		t.Errorf("after k, selection ID = %d, want 1", m.Selected().ID)
	}
}

func TestEnterOpensSelectedProject(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m, model.Project{ID: 5, Name: "alpha"})

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(OpenProjectMsg)
	if !ok {
		t.Fatalf("enter produced %T, want OpenProjectMsg", cmd())
	}
	if msg.Project.ID != 5 {
		t.Errorf("opened project ID = %d, want 5", msg.Project.ID)
	}
}

func TestEnterWithEmptyListDoesNothing(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m)

	_, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("enter on empty list produced a command")
	}
}

func TestFormRequiresName(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m)
	m, _ = m.Update(key("n"))

	if m.mode != modeForm {
		t.Fatal("n did not open the form")
	}
	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Error("empty name submitted anyway")
	}
	if m.formErr == "" {
		t.Error("no validation error shown for empty name")
	}
}

func TestFormSaveAndRefresh(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m)
	m, _ = m.Update(key("n"))
	m.inputs[fieldName].SetValue("new project")

	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("valid form produced no save command")
	}

	m, cmd = m.Update(ProjectSavedMsg{Gen: m.gen, Project: &model.Project{ID: 99, Name: "new project"}, Created: true})
	if m.mode != modeList {
		t.Error("form still open after save")
	}
	if cmd == nil {
		t.Error("save produced no toast/refresh command")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	gw := &fakeGateway{}
	m := New(gw, "Ada")
	m = loaded(m, model.Project{ID: 3, Name: "gone"})

	m, _ = m.Update(key("d"))
	if m.mode != modeConfirmDelete {
		t.Fatal("d did not open the confirmation")
	}

	// Declining keeps the project.
	m, _ = m.Update(key("n"))
	if m.mode != modeList {
		t.Fatal("n did not close the confirmation")
	}

	m, _ = m.Update(key("d"))
	m, cmd := m.Update(key("y"))
	if cmd == nil {
		t.Fatal("y produced no delete command")
	}
	if msg := cmd(); msg != nil {
		if del, ok := msg.(ProjectDeletedMsg); ok && del.ID != 3 {
			t.Errorf("deleted ID = %d, want 3", del.ID)
		}
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != 3 {
		t.Errorf("gateway deletions = %v, want [3]", gw.deleted)
	}
}

func TestStaleProjectListDropped(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	stale := m.gen
	m.gen++

	m, _ = m.Update(ProjectsLoadedMsg{Gen: stale, Projects: []model.Project{{ID: 1}}})
	if len(m.projects) != 0 {
		t.Error("stale project list applied")
	}
}

func TestListLoadErrorKeepsOldList(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m, model.Project{ID: 1, Name: "keep"})

	m, cmd := m.Update(ProjectsLoadedMsg{Gen: m.gen, Err: errors.New("down")})
	if cmd == nil {
		t.Error("load failure produced no toast")
	}
	if len(m.projects) != 1 {
		t.Error("load failure discarded the previous list")
	}
}

func TestUnauthorizedFailureDefersToForcedLogout(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")
	m = loaded(m, model.Project{ID: 1, Name: "keep"})

	// The app-level forced logout notifies the user; the view stays quiet.
	m, cmd := m.Update(ProjectsLoadedMsg{Gen: m.gen, Err: api.ErrUnauthorized})
	if cmd != nil {
		t.Error("unauthorized list failure produced a view-level toast")
	}
	m, cmd = m.Update(ProjectDeletedMsg{Gen: m.gen, ID: 1, Err: api.ErrUnauthorized})
	if cmd != nil {
		t.Error("unauthorized delete failure produced a view-level toast")
	}
}

func TestErrorToastShowsServiceDetail(t *testing.T) {
	m := New(&fakeGateway{}, "Ada")

	_, cmd := m.Update(ProjectDeletedMsg{Gen: m.gen, ID: 1,
		Err: &api.APIError{Status: 500, Detail: "Project has active uploads"}})
	if cmd == nil {
		t.Fatal("delete failure produced no toast")
	}
	msg, ok := cmd().(ToastMsg)
	if !ok {
		t.Fatalf("delete failure produced %T, want ToastMsg", cmd())
	}
	if msg.Message != "Delete failed: Project has active uploads" {
		t.Errorf("toast = %q, want the service detail without the error wrapper", msg.Message)
	}
}
