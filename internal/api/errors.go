// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ===== ERROR TYPES =====

var (
	// ErrUnauthorized indicates the service rejected the bearer token.
	// Callers treat this as a forced logout: the client has already
	// discarded the stored credential by the time this is returned.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNoToken indicates an authenticated endpoint was called while no
	// token is held.
	ErrNoToken = errors.New("not logged in")

	// ErrRateLimited indicates the client-side limiter refused an auth
	// attempt before it reached the network.
	ErrRateLimited = errors.New("too many attempts, wait a moment")
)

// genericDetail is what users see when the service returned a failure body
// the client could not interpret.
const genericDetail = "Network error"

// APIError is a non-2xx response from the parley service with whatever
// human-readable detail the service provided.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Detail)
}

// IsAuthError reports whether the failure invalidated the session.
func (e *APIError) IsAuthError() bool {
	return e.Status == 401
}

// ===== ERROR BODY PARSING =====

// errorBody is the service's standard failure envelope. The detail field is
// usually a string, but validation failures carry a structured list, so it
// is decoded in two passes.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// validationItem is one entry of a structured validation failure.
type validationItem struct {
	Msg string `json:"msg"`
}

// parseErrorDetail extracts a displayable message from a failure body.
// Returns genericDetail when the body is empty, not JSON, or carries no
// usable detail.
func parseErrorDetail(body []byte) string {
	if len(body) == 0 {
		return genericDetail
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return genericDetail
	}

	// Common case: {"detail": "Incorrect email or password"}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil && s != "" {
		return s
	}

	// Validation case: {"detail": [{"msg": "...", ...}, ...]}
	var items []validationItem
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		for _, it := range items {
			if it.Msg != "" {
				return it.Msg
			}
		}
	}

	return genericDetail
}

// newAPIError builds the error for a non-2xx response.
func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Detail: parseErrorDetail(body)}
}
