// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// SHARED STYLES
// =============================================================================

// Title is the screen title bar style.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(Cyan)

// Subtitle is the secondary heading under a title.
var Subtitle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// Help renders key hints at the bottom of a screen.
var Help = lipgloss.NewStyle().
	Foreground(TextMuted)

// ErrorText renders inline error messages under forms.
var ErrorText = lipgloss.NewStyle().
	Foreground(Rose)

// SuccessText renders inline confirmations.
var SuccessText = lipgloss.NewStyle().
	Foreground(Emerald)

// Label renders form field labels.
var Label = lipgloss.NewStyle().
	Foreground(TextSecondary)

// FocusedLabel marks the active form field.
var FocusedLabel = lipgloss.NewStyle().
	Foreground(FocusRing).
	Bold(true)

// =============================================================================
// LIST STYLES
// =============================================================================

// ListItem renders an unselected row.
var ListItem = lipgloss.NewStyle().
	Foreground(TextPrimary).
	PaddingLeft(2)

// ListItemSelected renders the cursor row.
var ListItemSelected = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(SelectionBg).
	Bold(true).
	PaddingLeft(1)

// ListItemMeta renders per-row counts and timestamps.
var ListItemMeta = lipgloss.NewStyle().
	Foreground(TextMuted)

// =============================================================================
// CHAT STYLES
// =============================================================================

// UserBubble frames a message from the user.
var UserBubble = lipgloss.NewStyle().
	Foreground(UserBubbleFg).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(UserBubbleBorder).
	Padding(0, 1)

// AssistantBubble frames a message from the assistant.
var AssistantBubble = lipgloss.NewStyle().
	Foreground(AssistantBubbleFg).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(AssistantBubbleBorder).
	Padding(0, 1)

// MessageAuthor renders the sender name above a bubble.
var MessageAuthor = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextSecondary)

// InputBox frames the chat input area.
var InputBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// InputBoxFocused frames the chat input when focused.
var InputBoxFocused = InputBox.
	BorderForeground(FocusRing)

// =============================================================================
// TOAST STYLES
// =============================================================================

// ToastError frames a transient error notification.
var ToastError = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Rose).
	Bold(true).
	Padding(0, 1)

// ToastSuccess frames a transient confirmation.
var ToastSuccess = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Emerald).
	Bold(true).
	Padding(0, 1)

// ToastInfo frames a transient neutral notice.
var ToastInfo = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Cyan).
	Padding(0, 1)
