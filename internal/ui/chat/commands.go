// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
)

// Gateway is the slice of the API client the conversation view needs.
type Gateway interface {
	SendMessage(ctx context.Context, projectID int64, message string) (*api.ChatExchange, error)
	History(ctx context.Context, projectID int64) ([]model.Message, error)
	ListFiles(ctx context.Context, projectID int64) ([]model.FileUpload, error)
	UploadFile(ctx context.Context, projectID int64, path string) (*model.FileUpload, error)
}

// Commands run in their own goroutine under Bubble Tea. None of them carry
// a deadline: an assistant reply takes as long as it takes, and the result
// message is discarded by generation check if the user has moved on.

// loadHistoryCmd fetches the stored conversation.
func loadHistoryCmd(g Gateway, projectID int64, gen int64) tea.Cmd {
	return func() tea.Msg {
		messages, err := g.History(context.Background(), projectID)
		return HistoryLoadedMsg{Gen: gen, Messages: messages, Err: err}
	}
}

// sendMessageCmd submits a message and waits for the assistant's reply.
func sendMessageCmd(g Gateway, projectID int64, text string, gen int64) tea.Cmd {
	return func() tea.Msg {
		exchange, err := g.SendMessage(context.Background(), projectID, text)
		if err != nil {
			return SendResultMsg{Gen: gen, Err: err}
		}
		return SendResultMsg{Gen: gen, Exchange: &Exchange{
			UserMessage:      exchange.UserMessage,
			AssistantMessage: exchange.AssistantMessage,
		}}
	}
}

// loadFilesCmd fetches the attachment list.
func loadFilesCmd(g Gateway, projectID int64, gen int64) tea.Cmd {
	return func() tea.Msg {
		files, err := g.ListFiles(context.Background(), projectID)
		return FilesLoadedMsg{Gen: gen, Files: files, Err: err}
	}
}

// uploadFileCmd uploads a local file into the project's context.
func uploadFileCmd(g Gateway, projectID int64, path string, gen int64) tea.Cmd {
	return func() tea.Msg {
		uploaded, err := g.UploadFile(context.Background(), projectID, path)
		return UploadResultMsg{Gen: gen, File: uploaded, Err: err}
	}
}
