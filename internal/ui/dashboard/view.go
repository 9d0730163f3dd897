// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// View renders the dashboard.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	header := components.Header{
		Title:   "parley",
		Context: m.userName,
		Width:   width,
	}

	var body string
	switch m.mode {
	case modeForm:
		body = m.viewForm()
	case modeConfirmDelete:
		body = m.viewConfirm()
	default:
		body = m.viewList(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header.View(), body)
}

func (m Model) viewList(width int) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Projects"))
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.projects) == 0:
		b.WriteString(styles.Help.Render("Loading projects..."))
	case len(m.projects) == 0:
		b.WriteString(styles.Help.Render("No projects yet. Press n to create one."))
	default:
		for i, p := range m.projects {
			name := util.TruncateWidth(p.Name, width-30)
			meta := util.IntToString(p.MessagesCount) + " messages"
			if p.FilesCount > 0 {
				meta += ", " + util.IntToString(p.FilesCount) + " files"
			}

			row := name + "  " + styles.ListItemMeta.Render(meta)
			if i == m.cursor {
				b.WriteString(styles.ListItemSelected.Render("> " + row))
			} else {
				b.WriteString(styles.ListItem.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("enter open - n new - e edit - d delete - r refresh - ctrl+l logout - ctrl+c quit"))
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := "New Project"
	if m.editing != nil {
		title = "Edit Project"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Name", "Description", "System prompt"}
	for i := formField(0); i < fieldCount; i++ {
		label := styles.Label.Render(labels[i])
		if i == m.focused {
			label = styles.FocusedLabel.Render(labels[i])
		}
		b.WriteString(label + "\n")
		b.WriteString(m.inputs[i].View() + "\n\n")
	}

	if m.formErr != "" {
		b.WriteString(styles.ErrorText.Render(m.formErr) + "\n\n")
	}
	b.WriteString(styles.Help.Render("enter save - tab next field - esc cancel"))
	return b.String()
}

func (m Model) viewConfirm() string {
	name := ""
	if p := m.Selected(); p != nil {
		name = p.Name
	}
	var b strings.Builder
	b.WriteString(styles.Title.Render("Delete Project"))
	b.WriteString("\n\n")
	b.WriteString("Delete " + styles.ErrorText.Render(name) + " and all of its messages and files?\n\n")
	b.WriteString(styles.Help.Render("y delete - n cancel"))
	return b.String()
}
