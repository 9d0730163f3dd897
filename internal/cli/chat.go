// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive terminal chat without the TUI.
//
// A plain REPL for SSH sessions and minimal terminals: liner for input
// history and line editing, one request in flight at a time.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/model"
)

// chatREPL wraps liner with persistent input history.
type chatREPL struct {
	line        *liner.State
	historyPath string
}

func newChatREPL() *chatREPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyPath, err := config.HistoryPath()
	if err != nil {
		historyPath = ""
	}
	r := &chatREPL{line: line, historyPath: historyPath}
	r.loadHistory()
	return r
}

func (r *chatREPL) loadHistory() {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		defer f.Close()
		r.line.ReadHistory(f)
	}
}

func (r *chatREPL) saveHistory() {
	if r.historyPath == "" {
		return
	}
	f, err := os.OpenFile(r.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

func (r *chatREPL) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *chatREPL) close() {
	r.saveHistory()
	r.line.Close()
}

// HandleChat runs the interactive chat loop against one project.
func HandleChat(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	parser := NewArgParser(args.Raw)

	projectID := parser.Int64Flag("project", 0)
	if projectID == 0 {
		return fmt.Errorf("project id is required (--project ID)")
	}

	ctx := context.Background()

	// Show recent history so the conversation has context.
	if history, err := env.Client.History(ctx, projectID); err == nil {
		start := len(history) - 6
		if start < 0 {
			start = 0
		}
		for _, msg := range history[start:] {
			printChatMessage(msg)
		}
	}

	repl := newChatREPL()
	defer repl.close()

	if !args.Quiet {
		fmt.Println(colorize("Connected. /help for commands, /quit to exit.", "8"))
	}

	for {
		input, err := repl.read("> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			return nil // EOF ends the session
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			done, err := handleSlashCommand(env, projectID, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", colorize(err.Error(), "1"))
			}
			if done {
				return nil
			}
			continue
		}

		exchange, err := env.Client.SendMessage(ctx, projectID, input)
		if err != nil {
			// The draft is still in liner's history; up-arrow retries it.
			fmt.Fprintf(os.Stderr, "%s\n", colorize(err.Error(), "1"))
			continue
		}
		printChatMessage(exchange.AssistantMessage)
	}
}

// handleSlashCommand runs a /command. Returns true when the session should
// end.
func handleSlashCommand(env *Env, projectID int64, input string) (bool, error) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help":
		fmt.Println(`Commands:
  /history        Show the full conversation
  /files          List the project's files
  /upload PATH    Attach a local file to the project
  /quit           Exit`)
		return false, nil

	case "/history":
		history, err := env.Client.History(context.Background(), projectID)
		if err != nil {
			return false, err
		}
		for _, msg := range history {
			printChatMessage(msg)
		}
		return false, nil

	case "/files":
		files, err := env.Client.ListFiles(context.Background(), projectID)
		if err != nil {
			return false, err
		}
		if len(files) == 0 {
			fmt.Println("No files attached.")
			return false, nil
		}
		for _, f := range files {
			fmt.Printf("  %s (%s)\n", f.OriginalName, f.SizeString())
		}
		return false, nil

	case "/upload":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /upload PATH")
		}
		uploaded, err := env.Client.UploadFile(context.Background(), projectID, fields[1])
		if err != nil {
			return false, err
		}
		fmt.Printf("Uploaded %s\n", uploaded.OriginalName)
		return false, nil

	default:
		return false, fmt.Errorf("unknown command: %s", fields[0])
	}
}

// printChatMessage prints one message with the author colored by role.
func printChatMessage(msg model.Message) {
	author := colorize(msg.Role.DisplayName(), "6")
	if msg.Role == model.RoleAssistant {
		author = colorize(msg.Role.DisplayName(), "5")
		fmt.Printf("%s:\n", author)
		displayReply(msg.Content)
		return
	}
	fmt.Printf("%s: %s\n", author, msg.Content)
}
