// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/util"
)

// MaxUploadSize caps the size of a file accepted for upload. The service
// enforces its own limit; rejecting locally avoids streaming a file that
// will be refused anyway.
const MaxUploadSize = 25 * 1024 * 1024 // 25MB

// ErrFileTooLarge indicates the local file exceeds MaxUploadSize.
var ErrFileTooLarge = fmt.Errorf("file exceeds %d bytes", MaxUploadSize)

// UploadFile uploads a local file into a project's context and returns the
// service's metadata record for it.
//
// The request is multipart/form-data with a single "file" part named after
// the file's base name. The whole body is assembled in memory; MaxUploadSize
// keeps that bounded.
func (c *Client) UploadFile(ctx context.Context, projectID int64, path string) (*model.FileUpload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/files/"+util.Int64ToString(projectID),
		&buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var uploaded model.FileUpload
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &uploaded, nil
}
