// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import "github.com/jeranaias/parley-tui/internal/model"

// ProjectsLoadedMsg delivers the project list.
type ProjectsLoadedMsg struct {
	Gen      int64
	Projects []model.Project
	Err      error
}

// ProjectSavedMsg delivers the outcome of a create or update.
type ProjectSavedMsg struct {
	Gen     int64
	Project *model.Project
	Created bool
	Err     error
}

// ProjectDeletedMsg delivers the outcome of a delete.
type ProjectDeletedMsg struct {
	Gen int64
	ID  int64
	Err error
}

// OpenProjectMsg asks the parent to open the conversation view.
type OpenProjectMsg struct {
	Project model.Project
}

// LogoutRequestMsg asks the parent to end the session.
type LogoutRequestMsg struct{}

// ToastMsg asks the parent to surface a notification.
type ToastMsg struct {
	Message string
	IsError bool
}
