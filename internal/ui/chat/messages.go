// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/parley-tui/internal/model"

// Every async result carries the generation it was started under.
// Generations are process-unique, so a reply that lands late is recognized
// and dropped instead of mutating a conversation the user already left,
// including a different conversation opened afterwards.

// HistoryLoadedMsg delivers the stored conversation.
type HistoryLoadedMsg struct {
	Gen      int64
	Messages []model.Message
	Err      error
}

// SendResultMsg delivers the outcome of a send: the recorded user message
// and the assistant reply, or the failure.
type SendResultMsg struct {
	Gen      int64
	Exchange *Exchange
	Err      error
}

// Exchange is one completed round trip.
type Exchange struct {
	UserMessage      model.Message
	AssistantMessage model.Message
}

// FilesLoadedMsg delivers the project's attachment list.
type FilesLoadedMsg struct {
	Gen   int64
	Files []model.FileUpload
	Err   error
}

// UploadResultMsg delivers the outcome of a file upload.
type UploadResultMsg struct {
	Gen  int64
	File *model.FileUpload
	Err  error
}

// BackMsg asks the parent to leave the conversation view.
type BackMsg struct{}

// ToastMsg asks the parent to surface a notification.
type ToastMsg struct {
	Message string
	IsError bool
}
