// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for the parley CLI.
//
// Running parley with no arguments starts the TUI; everything else is a
// plain stdin/stdout command suitable for scripts and SSH sessions.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdProjects
	CmdAsk
	CmdChat
	CmdFiles
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds the parsed command line.
type Args struct {
	Command Command

	// Global flags
	Quiet   bool
	Verbose bool

	// Remaining arguments after the command name
	Raw []string
}

const usageText = `parley - terminal client for the parley chat service

Usage:
  parley                          Start the TUI (default)
  parley login                    Log in and store the session token
  parley register                 Create an account
  parley logout                   Discard the stored session token
  parley whoami                   Show the logged-in identity
  parley projects [list|create|delete|show]
                                  Manage projects
  parley ask --project ID "question"
                                  Ask one question and print the reply
  parley chat --project ID        Interactive chat in the terminal
  parley files --project ID [list|upload PATH]
                                  Manage a project's files
  parley status                   Show configuration and session status
  parley version                  Show version
  parley help                     Show this help

Global flags:
  -q, --quiet      Suppress non-essential output
  -v, --verbose    Enable debug logging

Environment:
  PARLEY_API_URL   Override the service URL
  PARLEY_LOG_LEVEL Override the log level

The session token is stored at ~/.parley/token with owner-only permissions.`

// ParseArgs parses os.Args[1:] into a command and its arguments.
func ParseArgs(argv []string) Args {
	args := Args{Command: CmdTUI}

	var rest []string
	for _, arg := range argv {
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		default:
			rest = append(rest, arg)
		}
	}
	if len(rest) == 0 {
		return args
	}

	switch strings.ToLower(rest[0]) {
	case "login":
		args.Command = CmdLogin
	case "register", "signup":
		args.Command = CmdRegister
	case "logout":
		args.Command = CmdLogout
	case "whoami", "me":
		args.Command = CmdWhoami
	case "projects", "project", "p":
		args.Command = CmdProjects
	case "ask", "a":
		args.Command = CmdAsk
	case "chat", "c":
		args.Command = CmdChat
	case "files", "file", "f":
		args.Command = CmdFiles
	case "status", "s":
		args.Command = CmdStatus
	case "version", "-V", "--version":
		args.Command = CmdVersion
	case "help", "-h", "--help":
		args.Command = CmdHelp
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s\n", rest[0], usageText)
		os.Exit(2)
	}

	args.Raw = rest[1:]
	return args
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Println(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("parley %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
