// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the parley service.
package model

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIMESTAMP TYPE
// =============================================================================

// Timestamp wraps time.Time with a tolerant JSON decoder.
//
// The service serializes datetimes in ISO 8601 but does not always include a
// timezone offset, which the stock time.Time decoder rejects. Timestamp
// accepts RFC 3339 as well as the naive forms the service actually emits.
type Timestamp struct {
	time.Time
}

// timestampLayouts are tried in order when decoding.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON decodes a JSON string into a Timestamp.
// A JSON null or empty string leaves the zero value.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON encodes the Timestamp as an RFC 3339 JSON string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// =============================================================================
// USER TYPE
// =============================================================================

// User is the authenticated identity returned by the service.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     Timestamp `json:"created_at"`
	ProjectsCount int       `json:"projects_count,omitempty"`
}

// DisplayName returns the name shown in the UI: the full name when present,
// otherwise the email address.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Email
}

// =============================================================================
// PROJECT TYPE
// =============================================================================

// Project is a named chat agent owned by the current user.
type Project struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	SystemPrompt  string    `json:"system_prompt,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
	MessagesCount int       `json:"messages_count,omitempty"`
	FilesCount    int       `json:"files_count,omitempty"`
}

// MaxProjectNameLen is the service's limit on project names.
const MaxProjectNameLen = 200

// =============================================================================
// FILE UPLOAD TYPE
// =============================================================================

// FileUpload is the metadata the service keeps for a file attached to a
// project's context. The stored filename is server-assigned; OriginalName is
// what the user uploaded.
type FileUpload struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type,omitempty"`
	Size         int64     `json:"size,omitempty"`
	RemoteFileID string    `json:"openai_file_id,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// SizeString returns a human-readable size, or "-" when the server did not
// record one.
func (f *FileUpload) SizeString() string {
	if f.Size <= 0 {
		return "-"
	}
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case f.Size >= mb:
		whole := f.Size / mb
		tenth := (f.Size % mb) * 10 / mb
		return strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(tenth, 10) + " MB"
	case f.Size >= kb:
		return strconv.FormatInt(f.Size/kb, 10) + " KB"
	default:
		return strconv.FormatInt(f.Size, 10) + " B"
	}
}
