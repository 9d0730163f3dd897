// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// View renders the login or register form centered on screen.
func (m Model) View() string {
	var b strings.Builder

	title := "Log in to parley"
	if m.mode == modeRegister {
		title = "Create your parley account"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Name", "Email", "Password"}
	for f := m.firstField(); f < fieldCount; f++ {
		label := styles.Label.Render(labels[f])
		if f == m.focused {
			label = styles.FocusedLabel.Render(labels[f])
		}
		b.WriteString(label + "\n")
		b.WriteString(m.inputs[f].View() + "\n\n")
	}

	if m.errMsg != "" {
		b.WriteString(styles.ErrorText.Render(m.errMsg))
		b.WriteString("\n\n")
	}
	if m.submitting {
		b.WriteString(styles.Help.Render("Signing in..."))
	} else if m.mode == modeRegister {
		b.WriteString(styles.Help.Render("enter create account - esc back to login"))
	} else {
		b.WriteString(styles.Help.Render("enter log in - ctrl+r register - ctrl+c quit"))
	}

	form := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
