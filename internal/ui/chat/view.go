// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// filesPanelHeight is the number of rows the attachment panel occupies when
// visible.
const filesPanelHeight = 6

// transcriptHeight computes the viewport height from the current layout:
// header (2) + input box (3) + help line (1), plus the files panel when
// open.
func (m *Model) transcriptHeight() int {
	h := m.height - 6
	if m.filesVisible {
		h -= filesPanelHeight
	}
	if h < 3 {
		h = 3
	}
	return h
}

// refreshTranscript re-renders the message list into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

// renderMessages renders the full transcript. Assistant messages go through
// glamour so markdown replies read well in the terminal; user messages are
// shown verbatim.
func (m *Model) renderMessages() string {
	if len(m.messages) == 0 {
		return styles.Help.Render("No messages yet. Say something.")
	}

	wrap := m.width - 8
	if wrap < 20 {
		wrap = 20
	}

	var renderer *glamour.TermRenderer
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	); err == nil {
		renderer = r
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg, renderer, wrap))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(msg model.Message, renderer *glamour.TermRenderer, wrap int) string {
	author := styles.MessageAuthor.Render(msg.Role.DisplayName())

	content := msg.Content
	bubble := styles.UserBubble
	if msg.Role == model.RoleAssistant {
		bubble = styles.AssistantBubble
		if renderer != nil {
			if rendered, err := renderer.Render(content); err == nil {
				content = strings.TrimRight(rendered, "\n")
			}
		}
	}

	body := bubble.MaxWidth(wrap + 4).Render(content)
	return author + "\n" + body
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the conversation screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := components.Header{
		Title:   "parley",
		Context: m.project.Name,
		Width:   m.width,
	}

	var parts []string
	parts = append(parts, header.View())
	parts = append(parts, m.viewport.View())

	if m.filesVisible {
		parts = append(parts, m.renderFilesPanel())
	}

	inputBox := styles.InputBoxFocused
	inputView := m.input.View()
	helpLine := "enter send - ctrl+u upload - ctrl+f files - esc back"
	if m.mode == modeUpload {
		inputView = styles.Label.Render("Upload: ") + m.uploadInput.View()
		helpLine = "enter upload - esc cancel"
	}
	if m.sending {
		helpLine = m.spinner.View()
	}
	parts = append(parts, inputBox.Width(m.width-2).Render(inputView))
	parts = append(parts, styles.Help.Render(helpLine))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderFilesPanel renders the attachment list. An empty list is normal and
// says so; a failed fetch earlier just leaves the previous list in place.
func (m *Model) renderFilesPanel() string {
	title := styles.Subtitle.Render("Files")
	if len(m.files) == 0 {
		return title + "\n" + styles.Help.Render("  (no files attached)")
	}

	rows := []string{title}
	limit := filesPanelHeight - 1
	for i, f := range m.files {
		if i >= limit {
			rows = append(rows, styles.ListItemMeta.Render(
				"  ... and "+util.IntToString(len(m.files)-limit)+" more"))
			break
		}
		name := util.TruncateWidth(f.OriginalName, m.width-16)
		rows = append(rows, styles.ListItem.Render(name)+" "+
			styles.ListItemMeta.Render(f.SizeString()))
	}
	return strings.Join(rows, "\n")
}
