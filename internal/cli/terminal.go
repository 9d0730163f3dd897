// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the parley CLI.
//
// USABILITY: TTY detection for proper terminal handling. Interactive
// terminals get colors and prompts; piped output gets plain text.
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width used for wrapping
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, clamped to sane
// bounds.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

var (
	colorOnce    sync.Once
	colorProfile termenv.Profile
)

// ColorProfile returns the detected color capability of stdout. NO_COLOR
// and piped output both degrade to Ascii.
func ColorProfile() termenv.Profile {
	colorOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" || !IsStdoutTTY() {
			colorProfile = termenv.Ascii
			return
		}
		colorProfile = termenv.ColorProfile()
	})
	return colorProfile
}

// colorize wraps s in the given ANSI foreground color when stdout supports
// color.
func colorize(s, color string) string {
	p := ColorProfile()
	if p == termenv.Ascii {
		return s
	}
	return termenv.String(s).Foreground(p.Color(color)).String()
}

// bold renders s bold when stdout supports styling.
func bold(s string) string {
	if ColorProfile() == termenv.Ascii {
		return s
	}
	return termenv.String(s).Bold().String()
}
