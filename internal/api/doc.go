// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the gateway to the parley service.
//
// Every network call in the client goes through this package's Client: it is
// the single place where headers are constructed, the bearer token is
// attached, error bodies are normalized, and session expiry (HTTP 401) is
// detected. Other packages never touch net/http directly.
//
// GATEWAY: Secure logging and response size limits follow the same
// discipline as the rest of the client: request method/path/status/duration
// are logged, headers and bodies never are.
package api
