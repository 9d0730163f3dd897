// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
)

// fakeGateway records calls; results are delivered to Update directly in
// these tests, so its return values are mostly unused.
type fakeGateway struct {
	sendCalls   int
	uploadCalls int
}

func (f *fakeGateway) SendMessage(ctx context.Context, projectID int64, message string) (*api.ChatExchange, error) {
	f.sendCalls++
	return nil, errors.New("not used in tests")
}

func (f *fakeGateway) History(ctx context.Context, projectID int64) ([]model.Message, error) {
	return nil, nil
}

func (f *fakeGateway) ListFiles(ctx context.Context, projectID int64) ([]model.FileUpload, error) {
	return nil, nil
}

func (f *fakeGateway) UploadFile(ctx context.Context, projectID int64, path string) (*model.FileUpload, error) {
	f.uploadCalls++
	return nil, errors.New("not used in tests")
}

func testModel() (Model, *fakeGateway) {
	gw := &fakeGateway{}
	m := New(gw, model.Project{ID: 7, Name: "test"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, gw
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func exchange(user, assistant string) *Exchange {
	return &Exchange{
		UserMessage:      model.Message{ID: 1, Role: model.RoleUser, Content: user},
		AssistantMessage: model.Message{ID: 2, Role: model.RoleAssistant, Content: assistant},
	}
}

func TestEmptySendIgnored(t *testing.T) {
	m, _ := testModel()

	for _, draft := range []string{"", "   ", "\t \n"} {
		m.input.SetValue(draft)
		var cmd tea.Cmd
		m, cmd = m.Update(enter())
		if cmd != nil {
			t.Errorf("draft %q produced a command, want none", draft)
		}
		if m.Sending() {
			t.Errorf("draft %q set sending", draft)
		}
	}
}

func TestSendSuccessAppendsAndClears(t *testing.T) {
	m, _ := testModel()
	m.input.SetValue("hello")

	m, cmd := m.Update(enter())
	if cmd == nil {
		t.Fatal("send produced no command")
	}
	if !m.Sending() {
		t.Fatal("sending flag not set")
	}
	if m.Draft() != "hello" {
		t.Errorf("draft cleared before the send completed")
	}

	m, _ = m.Update(SendResultMsg{Gen: m.gen, Exchange: exchange("hello", "hi there")})

	if m.Sending() {
		t.Error("sending flag still set after result")
	}
	msgs := m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("messages[0] = %+v, want the user message first", msgs[0])
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != "hi there" {
		t.Errorf("messages[1] = %+v, want the assistant reply second", msgs[1])
	}
	if m.Draft() != "" {
		t.Errorf("Draft() = %q after success, want empty", m.Draft())
	}
}

func TestSendFailurePreservesDraftAndTranscript(t *testing.T) {
	m, _ := testModel()
	m, _ = m.Update(HistoryLoadedMsg{Gen: m.gen, Messages: []model.Message{
		{ID: 1, Role: model.RoleUser, Content: "earlier"},
	}})
	m.input.SetValue("retry me")

	m, _ = m.Update(enter())
	m, cmd := m.Update(SendResultMsg{Gen: m.gen, Err: &api.APIError{Status: 500, Detail: "boom"}})

	if m.Sending() {
		t.Error("sending flag still set after failure")
	}
	if m.Draft() != "retry me" {
		t.Errorf("Draft() = %q after failure, want preserved", m.Draft())
	}
	if len(m.Messages()) != 1 {
		t.Errorf("transcript changed on failure: %d messages", len(m.Messages()))
	}
	if cmd == nil {
		t.Error("failure produced no toast command")
	}
}

func TestStaleSendResultDropped(t *testing.T) {
	m, _ := testModel()
	m.input.SetValue("hello")
	m, _ = m.Update(enter())

	staleGen := m.gen
	m.Close() // user left the conversation

	m, _ = m.Update(SendResultMsg{Gen: staleGen, Exchange: exchange("hello", "late reply")})

	if len(m.Messages()) != 0 {
		t.Errorf("late reply mutated a closed conversation: %d messages", len(m.Messages()))
	}
}

func TestSingleInFlightSend(t *testing.T) {
	m, gw := testModel()
	m.input.SetValue("first")
	m, _ = m.Update(enter())

	// Typing continues while the send is pending, but enter does nothing.
	m.input.SetValue("second attempt")
	m, cmd := m.Update(enter())
	if cmd != nil {
		t.Error("second enter while sending produced a command")
	}
	_ = gw

	m, _ = m.Update(SendResultMsg{Gen: m.gen, Exchange: exchange("first", "ok")})
	if m.Sending() {
		t.Error("sending flag stuck after result")
	}
}

func TestUnauthorizedFailureDefersToForcedLogout(t *testing.T) {
	m, _ := testModel()
	m.input.SetValue("hello")
	m, _ = m.Update(enter())

	// The app-level forced logout notifies the user; the view stays quiet.
	m, cmd := m.Update(SendResultMsg{Gen: m.gen, Err: api.ErrUnauthorized})
	if cmd != nil {
		t.Error("unauthorized send failure produced a view-level toast")
	}
	if m.Sending() {
		t.Error("sending flag stuck after unauthorized failure")
	}

	m, cmd = m.Update(HistoryLoadedMsg{Gen: m.gen, Err: api.ErrUnauthorized})
	if cmd != nil {
		t.Error("unauthorized history failure produced a view-level toast")
	}
}

func TestFilesLoadFailureIsSilent(t *testing.T) {
	m, _ := testModel()
	m, _ = m.Update(FilesLoadedMsg{Gen: m.gen, Files: []model.FileUpload{
		{ID: 1, OriginalName: "notes.txt"},
	}})

	m, cmd := m.Update(FilesLoadedMsg{Gen: m.gen, Err: errors.New("unavailable")})
	if cmd != nil {
		t.Error("failed file fetch produced a command, want silent degrade")
	}
	if len(m.files) != 1 {
		t.Errorf("failed fetch discarded the previous list: %d files", len(m.files))
	}
}

func TestUploadSuccessRefetchesList(t *testing.T) {
	m, _ := testModel()

	m, cmd := m.Update(UploadResultMsg{Gen: m.gen, File: &model.FileUpload{OriginalName: "doc.pdf"}})
	if cmd == nil {
		t.Fatal("upload success produced no command, want toast plus re-fetch")
	}
	if len(m.files) != 0 {
		t.Error("upload result was merged locally instead of re-fetching")
	}
}

func TestResultFromEarlierConversationDropped(t *testing.T) {
	gw := &fakeGateway{}

	first := New(gw, model.Project{ID: 1, Name: "alpha"})
	firstGen := first.gen
	first.Close() // user backed out before the fetch returned

	second := New(gw, model.Project{ID: 2, Name: "beta"})
	second, _ = second.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// The first conversation's history lands after the second one opened.
	second, _ = second.Update(HistoryLoadedMsg{Gen: firstGen, Messages: []model.Message{
		{ID: 9, Role: model.RoleUser, Content: "alpha history"},
	}})
	if len(second.Messages()) != 0 {
		t.Errorf("history from an earlier conversation populated a new one: %d messages", len(second.Messages()))
	}

	second, _ = second.Update(SendResultMsg{Gen: firstGen, Exchange: exchange("old", "late reply")})
	if len(second.Messages()) != 0 {
		t.Errorf("reply from an earlier conversation populated a new one: %d messages", len(second.Messages()))
	}
}

func TestStaleHistoryDropped(t *testing.T) {
	m, _ := testModel()
	staleGen := m.gen
	m.Close()

	m, _ = m.Update(HistoryLoadedMsg{Gen: staleGen, Messages: []model.Message{
		{ID: 1, Role: model.RoleUser, Content: "old"},
	}})
	if len(m.Messages()) != 0 {
		t.Error("stale history applied after close")
	}
}
