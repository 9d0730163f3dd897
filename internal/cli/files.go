// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
)

// HandleFiles dispatches the files subcommands.
func HandleFiles(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	parser := NewArgParser(args.Raw)

	projectID := parser.Int64Flag("project", 0)
	if projectID == 0 {
		return fmt.Errorf("project id is required (--project ID)")
	}

	switch parser.Subcommand() {
	case "", "list", "ls":
		files, err := env.Client.ListFiles(context.Background(), projectID)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No files attached.")
			return nil
		}
		fmt.Printf("%-6s %-40s %s\n", "ID", "NAME", "SIZE")
		for _, f := range files {
			fmt.Printf("%-6d %-40s %s\n", f.ID, f.OriginalName, f.SizeString())
		}
		return nil

	case "upload", "add":
		path := parser.Positional(1)
		if path == "" {
			return fmt.Errorf("usage: parley files --project ID upload PATH")
		}
		uploaded, err := env.Client.UploadFile(context.Background(), projectID, path)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s)\n", bold(uploaded.OriginalName), uploaded.SizeString())
		return nil

	default:
		return fmt.Errorf("unknown files subcommand: %s", parser.Subcommand())
	}
}
