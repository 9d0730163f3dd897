// parley - A terminal client for the parley chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/cli"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/session"
	"github.com/jeranaias/parley-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so the API client's unauthorized hook can inject
// a message from outside the Bubble Tea loop.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args := cli.ParseArgs(os.Args[1:])
	configureLogging(args)

	var err error
	switch args.Command {
	case cli.CmdTUI:
		err = runTUI()
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdRegister:
		err = cli.HandleRegister(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdWhoami:
		err = cli.HandleWhoami(args)
	case cli.CmdProjects:
		err = cli.HandleProjects(args)
	case cli.CmdAsk:
		err = cli.HandleAsk(args)
	case cli.CmdChat:
		err = cli.HandleChat(args)
	case cli.CmdFiles:
		err = cli.HandleFiles(args)
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configureLogging sets the global log level. The TUI owns the terminal, so
// logs go to stderr where they only show after exit or when redirected.
func configureLogging(args cli.Args) {
	log.SetOutput(os.Stderr)
	switch {
	case args.Verbose:
		log.SetLevel(log.DebugLevel)
	case args.Quiet:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	tokenPath, err := config.TokenPath()
	if err != nil {
		return fmt.Errorf("failed to locate token path: %w", err)
	}

	client := api.NewClient(cfg.API.URL, api.NewFileTokenStore(tokenPath))
	store := session.NewStore(client)

	// A 401 anywhere forces a logout. The hook runs on a request goroutine,
	// so the state change is delivered into the program as a message.
	client.SetUnauthorizedHandler(func() {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(ui.ForcedLogoutMsg{})
		}
	})

	p := tea.NewProgram(
		ui.NewApp(client, store),
		tea.WithAltScreen(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	_, err = p.Run()
	return err
}
