// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/parley-tui/internal/util"
)

// HandleProjects dispatches the projects subcommands.
func HandleProjects(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "ls":
		return projectsList(env, args)
	case "create", "new":
		return projectsCreate(env, parser)
	case "delete", "rm":
		return projectsDelete(env, parser)
	case "show":
		return projectsShow(env, parser)
	default:
		return fmt.Errorf("unknown projects subcommand: %s", parser.Subcommand())
	}
}

func projectsList(env *Env, args Args) error {
	projects, err := env.Client.ListProjects(context.Background())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects. Create one with: parley projects create --name NAME")
		return nil
	}

	width := GetTerminalWidth()
	fmt.Printf("%-6s %-*s %s\n", "ID", width-30, "NAME", "MESSAGES")
	for _, p := range projects {
		name := util.TruncateWidth(p.Name, width-30)
		fmt.Printf("%-6d %-*s %d\n", p.ID, width-30, name, p.MessagesCount)
	}
	return nil
}

func projectsCreate(env *Env, parser *ArgParser) error {
	name := parser.Flag("name")
	if name == "" {
		name = strings.Join(parser.Rest(), " ")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name is required (--name NAME)")
	}

	p, err := env.Client.CreateProject(context.Background(), name,
		parser.Flag("description"), parser.Flag("system-prompt"))
	if err != nil {
		return err
	}
	fmt.Printf("Created project %d: %s\n", p.ID, bold(p.Name))
	return nil
}

func projectsDelete(env *Env, parser *ArgParser) error {
	id := parser.Int64Flag("project", 0)
	if id == 0 {
		id = parseID(parser.Positional(1))
	}
	if id == 0 {
		return fmt.Errorf("project id is required (parley projects delete ID)")
	}

	if !parser.BoolFlag("yes") && IsTTY() {
		answer, err := readLine(fmt.Sprintf("Delete project %d and all of its messages? [y/N] ", id))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := env.Client.DeleteProject(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func projectsShow(env *Env, parser *ArgParser) error {
	id := parser.Int64Flag("project", 0)
	if id == 0 {
		id = parseID(parser.Positional(1))
	}
	if id == 0 {
		return fmt.Errorf("project id is required (parley projects show ID)")
	}

	// There is no single-project endpoint; the list is small enough to
	// filter client-side.
	projects, err := env.Client.ListProjects(context.Background())
	if err != nil {
		return err
	}
	for _, p := range projects {
		if p.ID != id {
			continue
		}
		fmt.Printf("%s (id %d)\n", bold(p.Name), p.ID)
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		if p.SystemPrompt != "" {
			fmt.Printf("  system prompt: %s\n", util.TruncateRunes(p.SystemPrompt, 120))
		}
		fmt.Printf("  %d messages, %d files\n", p.MessagesCount, p.FilesCount)
		return nil
	}
	return fmt.Errorf("project %d not found", id)
}

// parseID parses a positional numeric id, returning 0 when absent.
func parseID(s string) int64 {
	var id int64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		id = id*10 + int64(r-'0')
	}
	return id
}
