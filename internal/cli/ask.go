// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders assistant replies for terminal display.
// USABILITY: Markdown with syntax highlighting when stdout is a TTY.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Plain text fallback when the renderer cannot initialize.
		markdownRenderer = nil
		return
	}
	markdownRenderer = r
}

// renderMarkdown renders markdown, falling back to the raw content.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply prints an assistant reply, rendering markdown only for
// interactive terminals so piped output stays clean.
func displayReply(content string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(content))
	} else {
		fmt.Println(content)
	}
}

// HandleAsk sends one message to a project and prints the reply.
func HandleAsk(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	parser := NewArgParser(args.Raw)

	projectID := parser.Int64Flag("project", 0)
	if projectID == 0 {
		return fmt.Errorf("project id is required (--project ID)")
	}
	question := strings.TrimSpace(strings.Join(parser.positional, " "))
	if question == "" {
		return fmt.Errorf("nothing to ask")
	}

	// The reply can take a while; there is no deadline here, only ctrl+c.
	exchange, err := env.Client.SendMessage(context.Background(), projectID, question)
	if err != nil {
		return err
	}
	displayReply(exchange.AssistantMessage.Content)
	return nil
}
