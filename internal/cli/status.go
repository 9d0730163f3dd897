// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/parley-tui/internal/session"
)

// HandleStatus prints configuration and session status.
func HandleStatus(args Args) error {
	env, err := NewEnv()
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n\n", bold("parley"), Version)
	fmt.Printf("Service:  %s\n", env.Config.API.URL)
	fmt.Printf("Theme:    %s\n", env.Config.UI.Theme)
	fmt.Printf("Log:      %s\n", env.Config.Log.Level)

	if !env.Client.HasToken() {
		fmt.Printf("Session:  %s\n", colorize("not logged in", "3"))
		return nil
	}

	// Verify the stored token against the service.
	if env.Store.Bootstrap(context.Background()) != session.StateAuthenticated {
		fmt.Printf("Session:  %s\n", colorize("stored token is no longer valid", "1"))
		return nil
	}

	user := env.Store.User()
	fmt.Printf("Session:  %s as %s <%s>\n",
		colorize("active", "2"), user.DisplayName(), user.Email)
	return nil
}
