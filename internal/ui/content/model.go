// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/ui/components"
	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// KeyMap defines the panel-level bindings.
type KeyMap struct {
	NextForm key.Binding
	PrevForm key.Binding
	Copy     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextForm: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("Ctrl+N", "mục tiếp")),
		PrevForm: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("Ctrl+P", "mục trước")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "sao chép")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextForm, k.Copy}
}

type subForm struct {
	title   string
	desc    string
	loading string
	result  string
	form    *components.Form
}

func newSubForms() map[Kind]*subForm {
	return map[Kind]*subForm{
		KindEmail: {
			title:   "Tạo Email Chào Mừng",
			desc:    "Tự động tạo email chào mừng cho nhân viên mới",
			loading: "Đang tạo email...",
			result:  "Email Chào Mừng",
			form: components.NewForm("Tạo Email Chào Mừng",
				components.Field{Key: "employee_name", Label: "Tên nhân viên", Placeholder: "Tên nhân viên", Required: true},
				components.Field{Key: "company_name", Label: "Tên công ty", Placeholder: "Tên công ty"},
				components.Field{Key: "position", Label: "Vị trí công việc", Placeholder: "Vị trí công việc"},
				components.Field{Key: "start_date", Label: "Ngày bắt đầu", Placeholder: "Ngày bắt đầu"},
				components.Field{Key: "department", Label: "Phòng ban", Placeholder: "Phòng ban"},
				components.Field{Key: "manager_name", Label: "Tên quản lý", Placeholder: "Tên quản lý"},
			),
		},
		KindSummary: {
			title:   "Tóm Tắt Tài Liệu",
			desc:    "Tự động tóm tắt nội dung tài liệu theo nhiều kiểu khác nhau",
			loading: "Đang tóm tắt...",
			result:  "Kết Quả Tóm Tắt",
			form: components.NewForm("Tóm Tắt Tài Liệu",
				components.Field{Key: "document_text", Label: "Nội dung tài liệu", Placeholder: "Nhập nội dung tài liệu cần tóm tắt...", Kind: components.FieldArea, Height: 6, Required: true},
				components.Field{Key: "summary_type", Label: "Kiểu tóm tắt", Kind: components.FieldSelect, Options: SummaryTypes, Default: "general"},
			),
		},
		KindQuestions: {
			title:   "Tạo Câu Hỏi Đào Tạo",
			desc:    "Tự động tạo câu hỏi đào tạo từ nội dung học liệu",
			loading: "Đang tạo câu hỏi...",
			result:  "Câu Hỏi Đào Tạo",
			form: components.NewForm("Tạo Câu Hỏi",
				components.Field{Key: "content", Label: "Nội dung học liệu", Placeholder: "Nhập nội dung để tạo câu hỏi...", Kind: components.FieldArea, Height: 6, Required: true},
				components.Field{Key: "question_type", Label: "Loại câu hỏi", Kind: components.FieldSelect, Options: QuestionTypes, Default: "mixed"},
				components.Field{Key: "num_questions", Label: "Số câu hỏi", Placeholder: "Số câu hỏi", Default: "5"},
			),
		},
		KindChecklist: {
			title:   "Tạo Checklist Onboarding",
			desc:    "Tự động tạo checklist onboarding theo vị trí và phòng ban",
			loading: "Đang tạo checklist...",
			result:  "Checklist Onboarding",
			form: components.NewForm("Tạo Checklist",
				components.Field{Key: "position", Label: "Vị trí công việc", Placeholder: "Vị trí công việc", Required: true},
				components.Field{Key: "department", Label: "Phòng ban", Placeholder: "Phòng ban"},
			),
		},
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the content panel. One request runs at a time across all
// sub-forms; each sub-form keeps its last result.
type Model struct {
	backend Backend
	theme   *styles.Theme
	logger  *slog.Logger
	copy    func(string) error
	keys    KeyMap

	forms   map[Kind]*subForm
	results map[Kind]*Result
	active  Kind
	focused bool

	view    viewport.Model
	spinner spinner.Model
	loading bool
	pending Kind
	width   int
	height  int
}

// New creates the panel.
func New(backend Backend, theme *styles.Theme, logger *slog.Logger) *Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	if logger == nil {
		logger = slog.Default()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Loading

	m := &Model{
		backend: backend,
		theme:   theme,
		logger:  logger,
		copy:    clipboard.WriteAll,
		keys:    DefaultKeyMap(),
		forms:   newSubForms(),
		results: make(map[Kind]*Result),
		view:    viewport.New(80, 10),
		spinner: sp,
	}
	m.SetSize(80, 24)
	return m
}

// Init does nothing; the panel has no startup request.
func (m *Model) Init() tea.Cmd { return nil }

// Title is the tab title.
func (m *Model) Title() string { return "Nội dung" }

// Busy reports whether a request is in flight.
func (m *Model) Busy() bool { return m.loading }

// Active returns the selected sub-form.
func (m *Model) Active() Kind { return m.active }

// Result returns the last result of kind, or nil.
func (m *Model) Result(kind Kind) *Result { return m.results[kind] }

// Form returns the form of kind.
func (m *Model) Form(kind Kind) *components.Form { return m.forms[kind].form }

// Keys returns the panel bindings.
func (m *Model) Keys() KeyMap { return m.keys }

// Focus focuses the active sub-form.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.forms[m.active].form.Focus()
}

// Blur removes focus.
func (m *Model) Blur() {
	m.focused = false
	m.forms[m.active].form.Blur()
}

// SetSize lays out the panel.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	for _, sf := range m.forms {
		sf.form.SetWidth(w - 4)
	}
	m.layout()
}

func (m *Model) layout() {
	formHeight := lipgloss.Height(m.forms[m.active].form.View(m.theme))
	m.view.Width = m.width
	m.view.Height = max(m.height-formHeight-5, 3)
	m.render()
}

// Select switches to kind.
func (m *Model) Select(kind Kind) tea.Cmd {
	if kind == m.active {
		return nil
	}
	m.forms[m.active].form.Blur()
	m.active = kind
	m.forms[kind].form.SetDisabled(m.loading)
	m.layout()
	m.view.GotoTop()
	if m.focused {
		return m.forms[kind].form.Focus()
	}
	return nil
}

func (m *Model) cycle(delta int) tea.Cmd {
	n := len(Kinds)
	return m.Select(Kind(((int(m.active)+delta)%n + n) % n))
}

// Update handles a message routed to the panel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ResultMsg:
		m.loading = false
		for _, sf := range m.forms {
			sf.form.SetDisabled(false)
		}
		res := msg.Result
		if res.Err != nil {
			m.logger.Error("CONTENT_FAILED", "kind", res.Kind.String(), "error", res.Err)
		}
		m.results[res.Kind] = &res
		if res.Kind == m.active {
			m.render()
			m.view.GotoTop()
		}
		return nil

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.NextForm):
			return m.cycle(1)
		case key.Matches(msg, m.keys.PrevForm):
			return m.cycle(-1)
		case key.Matches(msg, m.keys.Copy):
			return m.copyResult()
		case key.Matches(msg, m.keys.PageUp):
			m.view.HalfViewUp()
			return nil
		case key.Matches(msg, m.keys.PageDown):
			m.view.HalfViewDown()
			return nil
		}
	}

	form := m.forms[m.active].form
	submitted, cmd := form.Update(msg)
	if submitted {
		return tea.Batch(cmd, m.generate())
	}
	return cmd
}

func (m *Model) generate() tea.Cmd {
	if m.loading {
		return nil
	}
	sf := m.forms[m.active]
	if missing := sf.form.Missing(); len(missing) > 0 {
		return components.Notify(components.ToastInfo, "Vui lòng nhập: "+strings.Join(missing, ", "))
	}

	m.loading = true
	m.pending = m.active
	for _, f := range m.forms {
		f.form.SetDisabled(true)
	}
	kind, values := m.active, sf.form.Values()
	m.logger.Info("CONTENT_GENERATE", "kind", kind.String())

	b := m.backend
	return tea.Batch(func() tea.Msg {
		return ResultMsg{Result: Generate(context.Background(), b, kind, values)}
	}, m.spinner.Tick)
}

func (m *Model) copyResult() tea.Cmd {
	res := m.results[m.active]
	if res == nil {
		return nil
	}
	text := res.CopyText()
	if text == "" {
		return nil
	}
	if err := m.copy(text); err != nil {
		return components.Notify(components.ToastError, "Không thể sao chép: "+err.Error())
	}
	return components.Notify(components.ToastSuccess, "Đã sao chép nội dung")
}

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) render() {
	res := m.results[m.active]
	if res == nil {
		m.view.SetContent("")
		return
	}
	m.view.SetContent(renderResult(m.theme, *res, m.width-2))
}

func renderResult(theme *styles.Theme, res Result, width int) string {
	if res.Err != nil {
		return theme.ErrorRow.Render(res.Kind.ErrorText())
	}
	switch res.Kind {
	case KindEmail:
		return renderEmail(theme, res, width)
	case KindSummary:
		return lipgloss.NewStyle().Width(width).Render(res.Summary)
	case KindQuestions:
		return renderQuestions(theme, res, width)
	}
	return renderChecklist(theme, res, width)
}

func renderEmail(theme *styles.Theme, res Result, width int) string {
	if res.Email == nil {
		return theme.ErrorRow.Render(EmailError)
	}
	body := lipgloss.NewStyle().Width(width)
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Heading3.Render("Chủ đề:"),
		body.Render(string(res.Email.Subject)),
		"",
		theme.Heading3.Render("Nội dung:"),
		body.Render(string(res.Email.Body)),
	)
}

func renderQuestions(theme *styles.Theme, res Result, width int) string {
	var rows []string
	wrap := lipgloss.NewStyle().Width(width)
	for i, q := range res.Questions {
		if i > 0 {
			rows = append(rows, "")
		}
		head := theme.CardTitle.Render(fmt.Sprintf("Câu %d", i+1))
		if q.Type != "" {
			head += " " + theme.Chip.Render(string(q.Type))
		}
		rows = append(rows, head, wrap.Render(string(q.Question)))
		for j, opt := range q.Options {
			rows = append(rows, "  "+theme.Number.Render(OptionLetter(j)+".")+" "+string(opt))
		}
		if q.CorrectAnswer != "" {
			rows = append(rows, theme.SuccessRow.Render("Đáp án: ")+string(q.CorrectAnswer))
		}
		if q.Explanation != "" {
			rows = append(rows, wrap.Render(theme.FieldKey.Render("Giải thích: ")+string(q.Explanation)))
		}
	}
	return strings.Join(rows, "\n")
}

func renderChecklist(theme *styles.Theme, res Result, width int) string {
	if len(res.Checklist) == 0 {
		return theme.Muted.Render(ChecklistEmpty)
	}
	var rows []string
	wrap := lipgloss.NewStyle().Width(width - 2)
	for i, p := range res.Checklist {
		if i > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, theme.Heading2.Render(string(p.Timeline)))
		for _, t := range p.Tasks {
			badge := lipgloss.NewStyle().Bold(true).
				Foreground(styles.PriorityColor(string(t.Priority))).
				Render("[" + string(t.Priority) + "]")
			rows = append(rows, theme.Bullet.Render("│ ")+theme.Bold.Render(string(t.Task))+" "+badge)
			if t.Description != "" {
				rows = append(rows, indentRows(wrap.Render(string(t.Description))))
			}
			rows = append(rows, theme.Bullet.Render("│ ")+theme.Muted.Render(
				fmt.Sprintf("👤 %s   ⏱️ %s", t.Responsible, t.EstimatedTime)))
		}
	}
	return strings.Join(rows, "\n")
}

func indentRows(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "│ " + l
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSubTabs() string {
	parts := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		if k == m.active {
			parts = append(parts, m.theme.TabActive.Render(k.String()))
		} else {
			parts = append(parts, m.theme.Tab.Render(k.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// View renders the panel.
func (m *Model) View() string {
	sf := m.forms[m.active]
	parts := []string{
		m.renderSubTabs(),
		m.theme.CardTitle.Render(sf.title) + " " + m.theme.Muted.Render(sf.desc),
		sf.form.View(m.theme),
	}
	switch {
	case m.loading:
		parts = append(parts, m.spinner.View()+" "+m.theme.Loading.Render(m.forms[m.pending].loading))
	case m.results[m.active] != nil:
		parts = append(parts, m.theme.CardTitle.Render(sf.result))
	}
	parts = append(parts, m.view.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
