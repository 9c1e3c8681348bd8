// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
)

// =============================================================================
// DOCUMENT EXTRACTION
// =============================================================================

// Upload sends a document as multipart form data (fields "file" and
// "document_type") and returns the extraction result. A result whose Error
// is set is returned without a Go error; the caller decides how to show it.
func (c *Client) Upload(ctx context.Context, name, contentType string, r io.Reader, documentType string) (*UploadResult, error) {
	if documentType == "" {
		documentType = DocumentCV
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(filepath.Base(name))+`"`)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read file", Cause: err}
	}
	if err := mw.WriteField("document_type", documentType); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/extract/upload"), &buf)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result uploadResponse
	if err := c.doJSON(c.uploadClient, req, &result); err != nil {
		return nil, err
	}
	if result.Result == nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no result"}
	}
	return result.Result, nil
}

// AutoFill asks the backend to map extracted data onto form fields.
func (c *Client) AutoFill(ctx context.Context, data *ExtractedData) (map[string]string, error) {
	var result autoFillResponse
	if err := c.postJSON(ctx, "/api/extract/auto-fill", autoFillRequest{ExtractedInfo: data}, &result); err != nil {
		return nil, err
	}

	form := make(map[string]string, len(result.FormData))
	for k, v := range result.FormData {
		form[k] = v.String()
	}
	return form, nil
}

func escapeQuotes(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
