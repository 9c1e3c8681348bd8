// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SizeHint is the upload size shown to the user. It is not enforced.
const SizeHint = 10 << 20

// ErrUnsupportedType is returned for files outside the allowed types.
var ErrUnsupportedType = errors.New("unsupported file type")

// Allowed MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETXT  = "text/plain"
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
)

var allowedByExt = map[string]string{
	".pdf":  MIMEPDF,
	".doc":  MIMEDOC,
	".docx": MIMEDOCX,
	".txt":  MIMETXT,
	".jpg":  MIMEJPEG,
	".jpeg": MIMEJPEG,
	".png":  MIMEPNG,
}

var allowedMIME = map[string]bool{
	MIMEPDF: true, MIMEDOC: true, MIMEDOCX: true,
	MIMETXT: true, MIMEJPEG: true, MIMEPNG: true,
}

// Document is a local file that passed the type gate.
type Document struct {
	Path string
	Name string
	MIME string
	Size int64
}

// SizeMB formats the size the way the upload card shows it.
func (d Document) SizeMB() string {
	return fmt.Sprintf("%.2f MB", float64(d.Size)/1024/1024)
}

// OverHint reports whether the file is larger than SizeHint.
func (d Document) OverHint() bool {
	return d.Size > SizeHint
}

// Open opens the document for reading.
func (d Document) Open() (*os.File, error) {
	return os.Open(d.Path)
}

// InvalidFileMessage is the alert shown for a rejected file.
func InvalidFileMessage(name string) string {
	return "Định dạng tệp không hợp lệ: " + name
}

// Inspect stats path and applies the type gate. Rejected files return an
// error wrapping ErrUnsupportedType; nothing is uploaded for them.
func Inspect(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	name := filepath.Base(path)
	if info.IsDir() {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}

	mt, err := DetectMIME(path)
	if err != nil {
		return Document{}, err
	}
	if !allowedMIME[mt] {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}

	return Document{Path: path, Name: name, MIME: mt, Size: info.Size()}, nil
}

// DetectMIME returns the media type of a file: from the extension when it
// is known, otherwise from the first 512 bytes. Parameters are stripped.
func DetectMIME(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := allowedByExt[ext]; ok {
		return mt, nil
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return baseType(mt), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read document: %w", err)
	}
	return baseType(http.DetectContentType(head[:n])), nil
}

func baseType(mt string) string {
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return mt
}
