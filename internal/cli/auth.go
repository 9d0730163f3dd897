// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/parley-tui/internal/session"
)

// HandleLogin prompts for credentials and stores the session token.
func HandleLogin(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}

	parser := NewArgParser(args.Raw)
	email := parser.Flag("email")
	if email == "" {
		email, err = readLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := env.Store.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("Logged in as %s\n", bold(user.DisplayName()))
	}
	return nil
}

// HandleRegister creates an account. The service issues a session token on
// registration, so no separate login is needed.
func HandleRegister(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}

	name, err := readLine("Full name: ")
	if err != nil {
		return err
	}
	email, err := readLine("Email: ")
	if err != nil {
		return err
	}
	password, err := readPassword("Password (min 6 chars): ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := env.Store.Register(context.Background(), name, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("Welcome, %s\n", bold(user.DisplayName()))
	}
	return nil
}

// HandleLogout discards the stored token.
func HandleLogout(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}
	if err := env.Store.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	if !args.Quiet {
		fmt.Println("Logged out.")
	}
	return nil
}

// HandleWhoami prints the identity behind the stored token.
func HandleWhoami(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}

	if state := env.Store.Bootstrap(context.Background()); state != session.StateAuthenticated {
		return fmt.Errorf("not logged in (run: parley login)")
	}
	user := env.Store.User()

	fmt.Printf("%s <%s>\n", bold(user.DisplayName()), user.Email)
	if user.ProjectsCount > 0 {
		fmt.Printf("%d projects\n", user.ProjectsCount)
	}
	return nil
}
