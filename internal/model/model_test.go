// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampDecodesNaiveDatetime(t *testing.T) {
	// The service omits the timezone offset on datetimes.
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2025-03-14T09:26:53.589793"`), &ts); err != nil {
		t.Fatalf("Unmarshal naive datetime: %v", err)
	}
	if ts.Year() != 2025 || ts.Month() != time.March || ts.Day() != 14 {
		t.Errorf("Unexpected date: %v", ts.Time)
	}

	if err := json.Unmarshal([]byte(`"2025-03-14T09:26:53Z"`), &ts); err != nil {
		t.Fatalf("Unmarshal RFC3339 datetime: %v", err)
	}

	if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if !ts.IsZero() {
		t.Error("null should decode to the zero time")
	}
}

func TestUserDecode(t *testing.T) {
	raw := `{"id":1,"email":"a@b.com","full_name":"A","is_active":true,"created_at":"2025-01-02T03:04:05","projects_count":2}`

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("Unmarshal user: %v", err)
	}
	if u.ID != 1 || u.Email != "a@b.com" || !u.IsActive {
		t.Errorf("Unexpected user: %+v", u)
	}
	if u.DisplayName() != "A" {
		t.Errorf("Expected display name 'A', got %q", u.DisplayName())
	}

	u.FullName = "  "
	if u.DisplayName() != "a@b.com" {
		t.Errorf("Blank full name should fall back to email, got %q", u.DisplayName())
	}
}

func TestRoleDisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("Expected 'You', got %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Assistant" {
		t.Errorf("Expected 'Assistant', got %q", RoleAssistant.DisplayName())
	}
	if !RoleUser.IsValid() || !RoleAssistant.IsValid() {
		t.Error("Service roles should be valid")
	}
	if Role("system").IsValid() {
		t.Error("Unknown role should not be valid")
	}
}

func TestMessagePreview(t *testing.T) {
	msg := Message{Content: "line one\nline two that is fairly long"}

	preview := msg.Preview(15)
	if len([]rune(preview)) != 15 {
		t.Errorf("Expected 15 runes, got %d (%q)", len([]rune(preview)), preview)
	}
	if preview[len(preview)-3:] != "..." {
		t.Errorf("Expected ellipsis suffix, got %q", preview)
	}

	short := Message{Content: "hi"}
	if short.Preview(10) != "hi" {
		t.Errorf("Short content should be returned unchanged")
	}
}

func TestFileUploadSizeString(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "-"},
		{512, "512 B"},
		{2048, "2 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tc := range cases {
		f := FileUpload{Size: tc.size}
		if got := f.SizeString(); got != tc.want {
			t.Errorf("SizeString(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
