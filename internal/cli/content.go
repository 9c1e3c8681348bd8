// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// content.go - Onboarding content generators.
//
// Command: content email|summary|questions|checklist [flags]
//
// Examples:
//   onboard content email --name "Nguyễn Văn An" --position Developer
//   onboard content summary --file handbook.txt --type key_points
//   cat policy.md | onboard content questions --file - --count 10
//   onboard content checklist --position Designer --department Product
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
	"github.com/jeranaias/onboard-tui/internal/ui/content"
)

const contentUsage = "onboard content email|summary|questions|checklist [flags]"

var kindNames = map[content.Kind]string{
	content.KindEmail:     "email",
	content.KindSummary:   "summary",
	content.KindQuestions: "questions",
	content.KindChecklist: "checklist",
}

// HandleContent handles the "content" command.
func HandleContent(args Args) error {
	kind, ok := content.ParseKind(args.Subcommand)
	if !ok {
		if args.Subcommand == "" {
			return ErrMissingArgument("generator", contentUsage)
		}
		return NewValidationErrorWithExample("generator", args.Subcommand,
			"must be email, summary, questions or checklist", contentUsage)
	}

	values, err := contentValues(kind, args)
	if err != nil {
		return err
	}

	env := NewEnv(args)
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()

	env.Logger.Info("CONTENT_GENERATE", "kind", kindNames[kind])
	res := content.Generate(ctx, env.Client, kind, values)
	if res.Err != nil {
		env.Logger.Warn("CONTENT_FAILED", "kind", kindNames[kind], "error", res.Err)
		return NewCommandError("content", kindNames[kind], kind.ErrorText(), res.Err)
	}

	if args.JSON {
		return NewJSONResponse("content", ContentData{
			Kind:      kindNames[kind],
			Email:     res.Email,
			Summary:   res.Summary,
			Questions: res.Questions,
			Checklist: res.Checklist,
		}).Print()
	}

	if !args.Quiet {
		fmt.Fprintln(stdout, TitleStyle.Render(kind.String()))
	}
	fmt.Fprintln(stdout, renderMarkdown(res.Markdown()))
	return nil
}

// contentValues maps flags to the form keys the generator reads and
// checks the required ones.
func contentValues(kind content.Kind, args Args) (map[string]string, error) {
	opt := func(name string) string { return strings.TrimSpace(args.Options[name]) }
	values := map[string]string{}

	switch kind {
	case content.KindEmail:
		values["employee_name"] = opt("name")
		values["company_name"] = opt("company")
		values["position"] = opt("position")
		values["start_date"] = opt("start")
		values["department"] = opt("department")
		values["manager_name"] = opt("manager")
		if values["employee_name"] == "" {
			return nil, ErrMissingArgument("name", `onboard content email --name "Nguyễn Văn An"`)
		}

	case content.KindSummary, content.KindQuestions:
		text, err := documentText(args)
		if err != nil {
			return nil, err
		}
		if kind == content.KindSummary {
			values["document_text"] = text
			values["summary_type"] = strings.ToLower(args.Option("type", api.SummaryGeneral))
			if !hasOption(content.SummaryTypes, values["summary_type"]) {
				return nil, NewValidationError("type", values["summary_type"],
					"must be one of "+optionList(content.SummaryTypes))
			}
		} else {
			values["content"] = text
			values["question_type"] = strings.ToLower(args.Option("type", api.QuestionMixed))
			values["num_questions"] = opt("count")
			if !hasOption(content.QuestionTypes, values["question_type"]) {
				return nil, NewValidationError("type", values["question_type"],
					"must be one of "+optionList(content.QuestionTypes))
			}
		}

	case content.KindChecklist:
		values["position"] = opt("position")
		values["department"] = opt("department")
		if values["position"] == "" {
			return nil, ErrMissingArgument("position", "onboard content checklist --position Developer")
		}
	}
	return values, nil
}

// documentText reads --text, or the file named by --file ("-" is stdin).
func documentText(args Args) (string, error) {
	if text := strings.TrimSpace(args.Options["text"]); text != "" {
		return text, nil
	}
	if args.File == "" {
		return "", ErrMissingArgument("file or text", "onboard content summary --file handbook.txt")
	}

	var (
		data []byte
		err  error
	)
	if args.File == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args.File)
	}
	if os.IsNotExist(err) {
		return "", &NotFoundError{Resource: "file", ID: args.File}
	}
	if err != nil {
		return "", NewCommandError("content", "read", "cannot read document", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", NewValidationError("file", args.File, "document is empty")
	}
	return text, nil
}

func hasOption(opts []components.Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

func optionList(opts []components.Option) string {
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Value
	}
	return strings.Join(names, ", ")
}
