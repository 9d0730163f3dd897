// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the parley
// service: users, projects, chat messages, and file uploads.
//
// All types are immutable snapshots of server state. The client never
// computes or mutates them; it only displays what the server returned.
package model
