// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view: the message transcript,
// the input line, and the project's file attachments.
package chat

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/components"
)

// =============================================================================
// MODEL
// =============================================================================

// mode is the input mode of the conversation view.
type mode int

const (
	modeChat   mode = iota // typing into the message input
	modeUpload             // typing a local path into the upload prompt
)

// Model is the conversation view for one project.
type Model struct {
	gateway Gateway
	project model.Project

	messages []model.Message
	files    []model.FileUpload

	input       textinput.Model
	uploadInput textinput.Model
	viewport    viewport.Model
	spinner     components.Spinner

	mode         mode
	filesVisible bool

	// sending is the single-in-flight guard: while a send is pending the
	// input stays editable but submissions are ignored.
	sending        bool
	loadingHistory bool

	// gen tags every async command this view starts. Closing or switching
	// the conversation moves to a fresh generation, so results from an
	// abandoned conversation fail the generation check and are dropped.
	gen int64

	width  int
	height int
	ready  bool
}

// conversationGen issues generations across every conversation view the
// process opens. Generations are never reused: a result issued under one
// conversation can never match a view opened later, even for a different
// project.
var conversationGen atomic.Int64

// New creates a conversation view for the given project.
func New(g Gateway, project model.Project) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = model.MaxMessageLen
	input.Focus()

	uploadInput := textinput.New()
	uploadInput.Placeholder = "Path to file..."

	return Model{
		gateway:     g,
		project:     project,
		input:       input,
		uploadInput: uploadInput,
		viewport:    viewport.New(80, 20),
		spinner:     components.NewSpinner("Thinking"),
		gen:         conversationGen.Add(1),
	}
}

// Init starts the history and file fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadHistoryCmd(m.gateway, m.project.ID, m.gen),
		loadFilesCmd(m.gateway, m.project.ID, m.gen),
		textinput.Blink,
	)
}

// Project returns the project this conversation belongs to.
func (m *Model) Project() model.Project {
	return m.project
}

// Sending reports whether a send is in flight.
func (m *Model) Sending() bool {
	return m.sending
}

// Messages returns the transcript.
func (m *Model) Messages() []model.Message {
	return m.messages
}

// Draft returns the current input text.
func (m *Model) Draft() string {
	return m.input.Value()
}

// Close abandons the conversation. Any in-flight results are dropped when
// they arrive because their generation no longer matches.
func (m *Model) Close() {
	m.gen = conversationGen.Add(1)
	m.sending = false
	m.spinner.Stop()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the conversation view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HistoryLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loadingHistory = false
		if msg.Err != nil {
			m.refreshTranscript()
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				// The forced-logout path notifies; no view-level toast.
				return m, nil
			}
			return m, toastCmd("Could not load history: "+errorText(msg.Err), true)
		}
		m.messages = msg.Messages
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case SendResultMsg:
		return m.handleSendResult(msg)

	case FilesLoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		// A failed list fetch degrades silently: the chat works without
		// the attachment panel, so no error surfaces here.
		if msg.Err == nil {
			m.files = msg.Files
		}
		return m, nil

	case UploadResultMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, api.ErrUnauthorized) {
				return m, nil
			}
			return m, toastCmd("Upload failed: "+errorText(msg.Err), true)
		}
		// The upload response is not merged locally; the list is re-fetched
		// so the panel shows the server's record.
		return m, tea.Batch(
			toastCmd("Uploaded "+msg.File.OriginalName, false),
			loadFilesCmd(m.gateway, m.project.ID, m.gen),
		)

	default:
		// Non-key messages still feed the animated components: spinner
		// frames, cursor blink, viewport scroll state.
		var cmds []tea.Cmd
		if cmd := m.spinner.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		if m.mode == modeUpload {
			m.uploadInput, cmd = m.uploadInput.Update(msg)
		} else {
			m.input, cmd = m.input.Update(msg)
		}
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.viewport.Width = msg.Width
	m.viewport.Height = m.transcriptHeight()
	m.input.Width = msg.Width - 6
	m.uploadInput.Width = msg.Width - 6
	m.refreshTranscript()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.mode == modeUpload {
		return m.handleUploadKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.Close()
		return m, func() tea.Msg { return BackMsg{} }

	case "enter":
		return m.submit()

	case "ctrl+f":
		m.filesVisible = !m.filesVisible
		m.viewport.Height = m.transcriptHeight()
		m.refreshTranscript()
		return m, nil

	case "ctrl+u":
		m.mode = modeUpload
		m.uploadInput.SetValue("")
		m.input.Blur()
		return m, m.uploadInput.Focus()

	case "pgup", "pgdown", "ctrl+home", "ctrl+end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeChat
		m.uploadInput.Blur()
		return m, m.input.Focus()

	case "enter":
		path := strings.TrimSpace(m.uploadInput.Value())
		m.mode = modeChat
		m.uploadInput.Blur()
		cmd := m.input.Focus()
		if path == "" {
			return m, cmd
		}
		return m, tea.Batch(cmd, uploadFileCmd(m.gateway, m.project.ID, path, m.gen))
	}

	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return m, cmd
}

// submit starts a send if there is something to send and nothing in flight.
func (m Model) submit() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		// Whitespace-only input is not a message; nothing happens, not
		// even an error.
		return m, nil
	}
	if m.sending {
		return m, nil
	}

	m.sending = true
	return m, tea.Batch(
		m.spinner.Start(),
		sendMessageCmd(m.gateway, m.project.ID, text, m.gen),
	)
}

func (m Model) handleSendResult(msg SendResultMsg) (Model, tea.Cmd) {
	if msg.Gen != m.gen {
		// The conversation this send belonged to was closed; the reply is
		// dropped whether it succeeded or failed.
		return m, nil
	}

	m.sending = false
	m.spinner.Stop()

	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			// The forced-logout path notifies; no view-level toast.
			return m, nil
		}
		// The draft stays in the input and the transcript is untouched, so
		// the user can retry by pressing enter again.
		return m, toastCmd(errorText(msg.Err), true)
	}

	// User message first, then the assistant reply, matching what the
	// server recorded. The input clears only on success.
	m.messages = append(m.messages, msg.Exchange.UserMessage, msg.Exchange.AssistantMessage)
	m.input.SetValue("")
	m.refreshTranscript()
	m.viewport.GotoBottom()
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
