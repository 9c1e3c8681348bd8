// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extractor provides the document extraction panel: upload a file,
// inspect what the backend extracted, and edit and export the employee
// form filled from it.
package extractor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/extract"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
)

// Messages shown to the user.
const (
	GenericError = "Có lỗi xảy ra khi trích xuất thông tin từ tài liệu"
	NoData       = "Chưa có dữ liệu trích xuất"
	NoDataHint   = "Vui lòng chọn tài liệu ở mục \"Trích xuất\" để bắt đầu trích xuất thông tin"
)

// RemoteErrorMessage is the alert for an error reported by the backend.
func RemoteErrorMessage(reason string) string {
	return "Có lỗi khi trích xuất: " + reason
}

// DocumentTypes are the document types offered, in display order.
var DocumentTypes = []components.Option{
	{Value: api.DocumentCV, Label: "CV/Resume"},
	{Value: api.DocumentIDCard, Label: "CMND/CCCD"},
	{Value: api.DocumentDiploma, Label: "Bằng cấp"},
	{Value: api.DocumentOther, Label: "Tài liệu khác"},
}

// Backend is the part of the API client the panel needs.
type Backend interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader, documentType string) (*api.UploadResult, error)
	AutoFill(ctx context.Context, data *api.ExtractedData) (map[string]string, error)
}

// ExtractMsg carries the outcome of an upload.
type ExtractMsg struct {
	Document extract.Document
	Result   *api.UploadResult
	Err      error
}

// AutoFillMsg carries the form returned by the auto-fill endpoint.
type AutoFillMsg struct {
	Form map[string]string
	Err  error
}

// Upload opens doc and sends it to the backend.
func Upload(ctx context.Context, b Backend, doc extract.Document, documentType string) (*api.UploadResult, error) {
	f, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return b.Upload(ctx, doc.Name, doc.MIME, f, documentType)
}

// Outcome classifies an upload round trip. data is nil when the upload
// failed; message is the error row to show and alert is set when the user
// should also get a toast.
func Outcome(res *api.UploadResult, err error) (data *api.ExtractedData, message string, alert bool) {
	switch {
	case err != nil:
		return nil, GenericError, false
	case res == nil:
		return nil, GenericError, false
	case res.Failed():
		return nil, res.Error, true
	case res.ExtractedData == nil:
		return &api.ExtractedData{Raw: map[string]any{}}, "", false
	}
	return res.ExtractedData, "", false
}

// placeholder returns the hint shown in an empty employee form field.
func placeholder(label string) string {
	return "Nhập " + strings.ToLower(label)
}

// formFields maps the employee form schema to form widgets.
func formFields() []components.Field {
	fields := make([]components.Field, 0, len(extract.Fields))
	for _, f := range extract.Fields {
		cf := components.Field{Key: f.Key, Label: f.Label, Placeholder: placeholder(f.Label)}
		if f.Multiline {
			cf.Kind = components.FieldArea
			cf.Height = 3
		}
		fields = append(fields, cf)
	}
	return fields
}

func displayName(path string) string {
	return filepath.Base(path)
}
