// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/session"
)

// Env bundles what every CLI command needs: the loaded config, the API
// client with the stored token, and the session store over it.
type Env struct {
	Config *config.Config
	Client *api.Client
	Store  *session.Store
}

// NewEnv loads configuration and builds the client.
func NewEnv() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate token path: %w", err)
	}
	client := api.NewClient(cfg.API.URL, api.NewFileTokenStore(tokenPath))

	return &Env{
		Config: cfg,
		Client: client,
		Store:  session.NewStore(client),
	}, nil
}

// readLine prompts and reads one line from stdin.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword prompts and reads a password without echo. Falls back to a
// plain read when stdin is not a terminal (piped input).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !IsTTY() {
		return readLine("")
	}
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passBytes), nil
}
