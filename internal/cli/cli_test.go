// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParseArgsDefaultsToTUI(t *testing.T) {
	args := ParseArgs(nil)
	if args.Command != CmdTUI {
		t.Errorf("Command = %v, want CmdTUI", args.Command)
	}
}

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"register"}, CmdRegister},
		{[]string{"logout"}, CmdLogout},
		{[]string{"whoami"}, CmdWhoami},
		{[]string{"me"}, CmdWhoami},
		{[]string{"projects"}, CmdProjects},
		{[]string{"p", "list"}, CmdProjects},
		{[]string{"ask", "--project", "3", "hello"}, CmdAsk},
		{[]string{"chat", "--project", "3"}, CmdChat},
		{[]string{"files", "--project", "3"}, CmdFiles},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
	}
	for _, tt := range tests {
		args := ParseArgs(tt.argv)
		if args.Command != tt.want {
			t.Errorf("ParseArgs(%v).Command = %v, want %v", tt.argv, args.Command, tt.want)
		}
	}
}

func TestParseArgsGlobalFlags(t *testing.T) {
	args := ParseArgs([]string{"-q", "projects", "--verbose", "list"})
	if !args.Quiet || !args.Verbose {
		t.Errorf("Quiet=%v Verbose=%v, want both true", args.Quiet, args.Verbose)
	}
	if args.Command != CmdProjects {
		t.Errorf("Command = %v, want CmdProjects", args.Command)
	}
	if len(args.Raw) != 1 || args.Raw[0] != "list" {
		t.Errorf("Raw = %v, want [list]", args.Raw)
	}
}

func TestArgParserFormats(t *testing.T) {
	p := NewArgParser([]string{"create", "--name", "my project", "--json", "--depth=3", "extra"})

	if p.Subcommand() != "create" {
		t.Errorf("Subcommand() = %q", p.Subcommand())
	}
	if p.Flag("name") != "my project" {
		t.Errorf("Flag(name) = %q", p.Flag("name"))
	}
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) = false")
	}
	if p.IntFlag("depth", 0) != 3 {
		t.Errorf("IntFlag(depth) = %d", p.IntFlag("depth", 0))
	}
	if p.Positional(1) != "extra" {
		t.Errorf("Positional(1) = %q", p.Positional(1))
	}
}

func TestArgParserInt64Flag(t *testing.T) {
	p := NewArgParser([]string{"--project", "42"})
	if got := p.Int64Flag("project", 0); got != 42 {
		t.Errorf("Int64Flag(project) = %d, want 42", got)
	}
	if got := p.Int64Flag("missing", 7); got != 7 {
		t.Errorf("Int64Flag(missing) = %d, want default 7", got)
	}
}

func TestParseIDRejectsNonNumeric(t *testing.T) {
	if parseID("12a") != 0 {
		t.Error("parseID(12a) != 0")
	}
	if parseID("34") != 34 {
		t.Error("parseID(34) != 34")
	}
}
