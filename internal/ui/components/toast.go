// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the parley TUI.
//
// This file implements non-blocking toasts inspired by lazygit's popup/toast
// system. Toasts stack in the bottom-right corner and auto-dismiss, so the
// user keeps working while failures are displayed.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindInfo is an informational toast (cyan)
	ToastKindInfo ToastKind = iota
	// ToastKindError is an error toast (rose)
	ToastKindError
	// ToastKindSuccess is a success toast (emerald)
	ToastKindSuccess
)

// ToastDuration is the auto-dismiss duration. Every toast lives exactly
// this long; the lifetime is not configurable per toast.
const ToastDuration = 4000 * time.Millisecond

// Toast is a single non-blocking notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
}

// IsExpired reports whether the toast has outlived ToastDuration at the
// given instant.
func (t *Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= ToastDuration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the visible toasts in presentation order (oldest
// first). IDs come from a monotonic counter and are never reused, so a
// dismissal always targets exactly the toast it was issued for.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

// push appends a toast and returns its fresh ID.
func (m *ToastManager) push(message string, kind ToastKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.toasts = append(m.toasts, Toast{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	})
	return id
}

// AddError enqueues an error toast and returns its ID.
func (m *ToastManager) AddError(message string) int {
	return m.push(message, ToastKindError)
}

// AddSuccess enqueues a success toast and returns its ID.
func (m *ToastManager) AddSuccess(message string) int {
	return m.push(message, ToastKindSuccess)
}

// AddInfo enqueues an informational toast and returns its ID.
func (m *ToastManager) AddInfo(message string) int {
	return m.push(message, ToastKindInfo)
}

// Dismiss removes the toast with the given ID. Dismissing an unknown or
// already-removed ID is a no-op, so manual dismissal racing expiry is
// harmless in either order.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissOldest removes the toast at the front of the stack, if any.
func (m *ToastManager) DismissOldest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}

// Expire removes every toast older than ToastDuration at the given instant
// and reports whether any were removed.
func (m *ToastManager) Expire(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.IsExpired(now) {
			active = append(active, toast)
		}
	}
	removed := len(active) != len(m.toasts)
	m.toasts = active
	return removed
}

// Toasts returns a copy of the visible toasts, oldest first.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Toast, len(m.toasts))
	copy(result, m.toasts)
	return result
}

// HasToasts reports whether any toast is visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every 100ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// toastStyle returns the box style for a toast kind.
func toastStyle(kind ToastKind) lipgloss.Style {
	switch kind {
	case ToastKindError:
		return styles.ToastError
	case ToastKindSuccess:
		return styles.ToastSuccess
	default:
		return styles.ToastInfo
	}
}

// RenderToastStack renders the visible toasts stacked in the bottom-right
// corner, oldest on top.
func RenderToastStack(toasts []Toast, width, height int) string {
	if len(toasts) == 0 {
		return ""
	}

	maxWidth := 60
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		msg := toast.Message
		if msg == "" {
			continue
		}
		rendered = append(rendered, toastStyle(toast.Kind).MaxWidth(maxWidth).Render(msg))
	}
	if len(rendered) == 0 {
		return ""
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	stack = lipgloss.NewStyle().MarginRight(2).MarginBottom(1).Render(stack)

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
	}
	return stack
}

// OverlayToasts draws the toast stack over a rendered view by replacing the
// view's trailing lines. Lipgloss has no true compositing, so the overlay
// trades the bottom rows for the stack while toasts are visible.
func OverlayToasts(view string, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return view
	}

	stack := RenderToastStack(toasts, width, 0)
	stackLines := strings.Split(stack, "\n")
	viewLines := strings.Split(view, "\n")

	if len(stackLines) >= len(viewLines) {
		return view
	}
	base := len(viewLines) - len(stackLines)
	for i, line := range stackLines {
		pad := width - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		viewLines[base+i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(viewLines, "\n")
}
