// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content provides the content generation panel: welcome emails,
// document summaries, training questions and onboarding checklists.
package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
)

// Kind selects one of the sub-forms.
type Kind int

const (
	KindEmail Kind = iota
	KindSummary
	KindQuestions
	KindChecklist
)

// Kinds lists the sub-forms in display order.
var Kinds = []Kind{KindEmail, KindSummary, KindQuestions, KindChecklist}

// String returns the sub-tab label.
func (k Kind) String() string {
	switch k {
	case KindEmail:
		return "Email"
	case KindSummary:
		return "Tóm tắt"
	case KindQuestions:
		return "Câu hỏi"
	case KindChecklist:
		return "Checklist"
	}
	return "?"
}

// ParseKind maps a CLI name to a Kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case "email", "welcome-email":
		return KindEmail, true
	case "summary", "summarize":
		return KindSummary, true
	case "questions", "training-questions":
		return KindQuestions, true
	case "checklist", "onboarding-checklist":
		return KindChecklist, true
	}
	return 0, false
}

// Error rows shown when a request fails.
const (
	EmailError     = "Có lỗi xảy ra khi tạo email"
	SummaryError   = "Có lỗi xảy ra khi tóm tắt tài liệu"
	QuestionsError = "Có lỗi xảy ra khi tạo câu hỏi"
	ChecklistError = "Có lỗi xảy ra khi tạo checklist"
	ChecklistEmpty = "Không có dữ liệu checklist"
)

// ErrorText returns the error row of a sub-form.
func (k Kind) ErrorText() string {
	switch k {
	case KindEmail:
		return EmailError
	case KindSummary:
		return SummaryError
	case KindQuestions:
		return QuestionsError
	}
	return ChecklistError
}

// SummaryTypes are the summary styles offered.
var SummaryTypes = []components.Option{
	{Value: api.SummaryGeneral, Label: "Tóm tắt tổng quan"},
	{Value: api.SummaryKeyPoints, Label: "Điểm chính"},
	{Value: api.SummaryActionItems, Label: "Hành động cần thực hiện"},
}

// QuestionTypes are the question styles offered.
var QuestionTypes = []components.Option{
	{Value: api.QuestionMixed, Label: "Hỗn hợp"},
	{Value: api.QuestionMultipleChoice, Label: "Trắc nghiệm"},
	{Value: api.QuestionTrueFalse, Label: "Đúng/Sai"},
}

// Bounds of the question count.
const (
	DefaultQuestions = 5
	MinQuestions     = 1
	MaxQuestions     = 20
)

// ParseCount parses the question count. Anything unparsable yields the
// default; numbers outside the bounds are clamped.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return DefaultQuestions
	}
	return min(max(n, MinQuestions), MaxQuestions)
}

// Backend is the part of the API client the panel needs.
type Backend interface {
	WelcomeEmail(ctx context.Context, info api.EmployeeInfo) (*api.Email, error)
	Summarize(ctx context.Context, req api.SummaryRequest) (string, error)
	TrainingQuestions(ctx context.Context, req api.QuestionsRequest) ([]api.Question, error)
	OnboardingChecklist(ctx context.Context, req api.ChecklistRequest) ([]api.ChecklistPhase, error)
}

// Result is the outcome of one generate request.
type Result struct {
	Kind      Kind
	Email     *api.Email
	Summary   string
	Questions []api.Question
	Checklist []api.ChecklistPhase
	Err       error
}

// ResultMsg delivers a Result to the panel.
type ResultMsg struct {
	Result Result
}

// Generate issues the request of kind with the given form values.
func Generate(ctx context.Context, b Backend, kind Kind, values map[string]string) Result {
	res := Result{Kind: kind}
	switch kind {
	case KindEmail:
		res.Email, res.Err = b.WelcomeEmail(ctx, api.EmployeeInfo{
			EmployeeName: values["employee_name"],
			CompanyName:  values["company_name"],
			Position:     values["position"],
			StartDate:    values["start_date"],
			Department:   values["department"],
			ManagerName:  values["manager_name"],
		})
	case KindSummary:
		res.Summary, res.Err = b.Summarize(ctx, api.SummaryRequest{
			DocumentText: values["document_text"],
			SummaryType:  values["summary_type"],
		})
	case KindQuestions:
		res.Questions, res.Err = b.TrainingQuestions(ctx, api.QuestionsRequest{
			Content:      values["content"],
			QuestionType: values["question_type"],
			NumQuestions: ParseCount(values["num_questions"]),
		})
	case KindChecklist:
		res.Checklist, res.Err = b.OnboardingChecklist(ctx, api.ChecklistRequest{
			Position:   values["position"],
			Department: values["department"],
		})
	}
	return res
}

// =============================================================================
// PLAIN TEXT
// =============================================================================

// Markdown renders a result as markdown, used for copying and by the CLI.
func (r Result) Markdown() string {
	if r.Err != nil {
		return r.Kind.ErrorText()
	}
	switch r.Kind {
	case KindEmail:
		if r.Email == nil {
			return EmailError
		}
		return fmt.Sprintf("## Chủ đề:\n%s\n\n## Nội dung:\n%s", r.Email.Subject, r.Email.Body)
	case KindSummary:
		return r.Summary
	case KindQuestions:
		return questionsMarkdown(r.Questions)
	}
	return checklistMarkdown(r.Checklist)
}

// CopyText is what ctrl+y puts on the clipboard.
func (r Result) CopyText() string {
	if r.Err != nil {
		return ""
	}
	switch r.Kind {
	case KindEmail:
		if r.Email == nil {
			return ""
		}
		return r.Email.Plain()
	case KindSummary:
		return r.Summary
	}
	return r.Markdown()
}

func questionsMarkdown(qs []api.Question) string {
	var sb strings.Builder
	for i, q := range qs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "### Câu %d", i+1)
		if q.Type != "" {
			fmt.Fprintf(&sb, " (%s)", q.Type)
		}
		fmt.Fprintf(&sb, "\n%s\n", q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(&sb, "%s. %s\n", OptionLetter(j), opt)
		}
		if q.CorrectAnswer != "" {
			fmt.Fprintf(&sb, "**Đáp án:** %s\n", q.CorrectAnswer)
		}
		if q.Explanation != "" {
			fmt.Fprintf(&sb, "**Giải thích:** %s\n", q.Explanation)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func checklistMarkdown(phases []api.ChecklistPhase) string {
	if len(phases) == 0 {
		return ChecklistEmpty
	}
	var sb strings.Builder
	for i, p := range phases {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n", p.Timeline)
		for _, t := range p.Tasks {
			fmt.Fprintf(&sb, "- **%s** [%s]\n", t.Task, t.Priority)
			if t.Description != "" {
				fmt.Fprintf(&sb, "  %s\n", t.Description)
			}
			fmt.Fprintf(&sb, "  👤 %s  ⏱️ %s\n", t.Responsible, t.EstimatedTime)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// OptionLetter returns A, B, C... for option index i.
func OptionLetter(i int) string {
	if i < 0 || i >= 26 {
		return strconv.Itoa(i + 1)
	}
	return string(rune('A' + i))
}
