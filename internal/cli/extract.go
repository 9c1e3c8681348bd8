// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// extract.go - Document extraction command.
//
// Command: extract FILE [--type TYPE] [--export PATH]
// Short:   Upload a document and print the extracted data and employee form
//
// Examples:
//   onboard extract cv.pdf
//   onboard extract scan.png --type id_card --json
//   onboard extract cv.docx --export form.yaml
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/extract"
	"github.com/jeranaias/onboard-tui/internal/ui/extractor"
	"github.com/jeranaias/onboard-tui/internal/util"
)

// HandleExtract handles the "extract" command.
func HandleExtract(args Args) error {
	if args.File == "" {
		return ErrMissingArgument("file", "onboard extract ~/Documents/cv.pdf")
	}

	env := NewEnv(args)
	defer env.Close()

	docType := strings.ToLower(args.Option("type", env.Config.Extract.DocumentType))
	if !validDocumentType(docType) {
		return NewValidationErrorWithExample("type", docType,
			"must be one of "+strings.Join(api.DocumentTypes, ", "), "onboard extract cv.pdf --type cv")
	}

	doc, err := extract.Inspect(args.File)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Resource: "file", ID: args.File}
	case errors.Is(err, extract.ErrUnsupportedType):
		return NewCommandError("extract", "inspect", extract.InvalidFileMessage(filepath.Base(args.File)), err)
	case err != nil:
		return NewCommandError("extract", "inspect", "cannot read file", err)
	}
	if doc.OverHint() && !args.Quiet {
		StderrPrint("%s\n", WarningStyle.Render(fmt.Sprintf("%s (%s) vượt quá 10MB", doc.Name, doc.SizeMB())))
	}

	ctx, cancel := commandContext()
	defer cancel()

	env.Logger.Info("EXTRACT_UPLOAD", "file", doc.Name, "mime", doc.MIME, "size", doc.Size, "document_type", docType)
	res, err := extractor.Upload(ctx, env.Client, doc, docType)
	data, message, remote := extractor.Outcome(res, err)
	if data == nil {
		if remote {
			message = extractor.RemoteErrorMessage(message)
		}
		env.Logger.Warn("EXTRACT_FAILED", "file", doc.Name, "error", err, "remote", remote)
		if err == nil {
			err = &api.ClientError{Type: api.ErrTypeRemote, Message: message}
		}
		return NewCommandError("extract", "upload", message, err)
	}

	form := extract.DeriveForm(data)
	out := ExtractData{
		File:          doc.Name,
		MIME:          doc.MIME,
		Size:          doc.Size,
		DocumentType:  docType,
		ExtractedData: data,
		Form:          form,
	}

	if path := args.Option("export", ""); path != "" {
		path = util.ExpandHome(path)
		if err := extract.WriteFile(form, path); err != nil {
			return NewCommandError("extract", "export", "cannot write form", err)
		}
		out.ExportedTo = path
	}

	if args.JSON {
		return NewJSONResponse("extract", out).Print()
	}
	printExtract(out, args.Quiet)
	return nil
}

func validDocumentType(t string) bool {
	for _, d := range api.DocumentTypes {
		if d == t {
			return true
		}
	}
	return false
}

func printExtract(out ExtractData, quiet bool) {
	if !quiet {
		fmt.Fprintln(stdout, TitleStyle.Render(fmt.Sprintf("📄 %s · %s", out.File, extract.Document{Size: out.Size}.SizeMB())))
		fmt.Fprintln(stdout, SectionStyle.Render("Dữ liệu trích xuất"))
		for _, e := range extract.Entries(out.ExtractedData) {
			fmt.Fprintln(stdout, RenderField(e.Label+":", e.Value))
		}
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, SectionStyle.Render("Biểu mẫu nhân viên"))
	}
	for _, f := range extract.Fields {
		fmt.Fprintln(stdout, RenderField(f.Label+":", out.Form[f.Key]))
	}
	if out.ExportedTo != "" {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, SuccessStyle.Render("Đã lưu biểu mẫu: "+out.ExportedTo))
	}
}
