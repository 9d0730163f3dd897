// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// Header renders the top bar shown on every authenticated screen: the
// product name on the left, the current context (project or account) on the
// right, a rule underneath.
type Header struct {
	Title   string
	Context string
	Width   int
}

// View renders the header. Context is truncated before the title is, so the
// product name survives narrow terminals.
func (h Header) View() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	title := styles.Title.Render(h.Title)
	titleWidth := lipgloss.Width(title)

	ctx := h.Context
	avail := width - titleWidth - 3
	if avail < 0 {
		avail = 0
	}
	ctx = util.TruncateWidth(ctx, avail)
	ctxRendered := styles.Subtitle.Render(ctx)

	gap := width - titleWidth - lipgloss.Width(ctxRendered)
	if gap < 1 {
		gap = 1
	}
	line := title + util.PadRight("", gap) + ctxRendered

	rule := lipgloss.NewStyle().Foreground(styles.Overlay).
		Render(strings.Repeat("-", width))

	return line + "\n" + rule
}
