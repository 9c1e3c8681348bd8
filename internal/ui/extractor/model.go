// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extractor

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/extract"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
	"github.com/jeranaias/onboard-tui/internal/ui/styles"
	"github.com/jeranaias/onboard-tui/internal/util"
)

// View selects the half of the panel on display.
type View int

const (
	ViewExtract View = iota
	ViewForm
)

func (v View) String() string {
	if v == ViewForm {
		return "Biểu mẫu"
	}
	return "Trích xuất"
}

// KeyMap defines the panel bindings.
type KeyMap struct {
	Switch   key.Binding
	AutoFill key.Binding
	JSON     key.Binding
	Copy     key.Binding
	Export   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Switch:   key.NewBinding(key.WithKeys("ctrl+n", "ctrl+p"), key.WithHelp("Ctrl+N", "đổi mục")),
		AutoFill: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("Ctrl+F", "điền biểu mẫu")),
		JSON:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("Ctrl+T", "JSON")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "sao chép")),
		Export:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl+S", "tải xuống")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.AutoFill, k.JSON, k.Copy, k.Export}
}

// Options configures the panel.
type Options struct {
	Backend      Backend
	Theme        *styles.Theme
	Logger       *slog.Logger
	DocumentType string // initial document type, default cv
	ExportFormat string // json or yaml
	ExportDir    string
	CopyText     func(string) error
}

// Model is the extractor panel.
type Model struct {
	backend Backend
	theme   *styles.Theme
	logger  *slog.Logger
	copy    func(string) error
	keys    KeyMap

	exportFormat string
	exportDir    string

	view     View
	upload   *components.Form
	employee *components.Form
	extra    extract.Form // auto-fill keys outside the schema
	filled   bool

	doc     *extract.Document
	data    *api.ExtractedData
	errText string
	asJSON  bool

	result   viewport.Model
	formView viewport.Model
	spinner  spinner.Model
	loading  bool
	focused  bool
	width    int
	height   int
}

// New creates the panel.
func New(opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	docType := opts.DocumentType
	if docType == "" {
		docType = api.DocumentCV
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Loading

	m := &Model{
		backend:      opts.Backend,
		theme:        theme,
		logger:       logger,
		copy:         copyText,
		keys:         DefaultKeyMap(),
		exportFormat: opts.ExportFormat,
		exportDir:    opts.ExportDir,
		upload: components.NewForm("Trích Xuất Thông Tin",
			components.Field{Key: "path", Label: "Đường dẫn tệp", Placeholder: "~/Documents/cv.pdf", Required: true},
			components.Field{Key: "document_type", Label: "Loại tài liệu", Kind: components.FieldSelect, Options: DocumentTypes, Default: docType},
		),
		employee: components.NewForm("Tải xuống", formFields()...),
		result:   viewport.New(80, 10),
		formView: viewport.New(80, 10),
		spinner:  sp,
	}
	m.SetSize(80, 24)
	return m
}

// Init does nothing; the panel has no startup request.
func (m *Model) Init() tea.Cmd { return nil }

// Title is the tab title.
func (m *Model) Title() string { return "Trích xuất" }

// Busy reports whether an upload or auto-fill is in flight.
func (m *Model) Busy() bool { return m.loading }

// Keys returns the panel bindings.
func (m *Model) Keys() KeyMap { return m.keys }

// ActiveView returns the half on display.
func (m *Model) ActiveView() View { return m.view }

// Data returns the last extracted data, or nil.
func (m *Model) Data() *api.ExtractedData { return m.data }

// ErrorText returns the error row of the last upload.
func (m *Model) ErrorText() string { return m.errText }

// UploadForm returns the file selection form.
func (m *Model) UploadForm() *components.Form { return m.upload }

// EmployeeForm returns the employee form.
func (m *Model) EmployeeForm() *components.Form { return m.employee }

// SetExport changes where exports are written.
func (m *Model) SetExport(format, dir string) {
	m.exportFormat, m.exportDir = format, dir
}

// FormData returns the employee form including keys added by auto-fill.
func (m *Model) FormData() extract.Form {
	out := make(extract.Form, len(m.extra)+len(extract.Fields))
	for k, v := range m.extra {
		out[k] = v
	}
	for k, v := range m.employee.Values() {
		out[k] = v
	}
	return out
}

// HasForm reports whether there is form data to copy or export.
func (m *Model) HasForm() bool {
	if m.filled || len(m.extra) > 0 {
		return true
	}
	for _, v := range m.employee.Values() {
		if v != "" {
			return true
		}
	}
	return false
}

func (m *Model) activeForm() *components.Form {
	if m.view == ViewForm {
		return m.employee
	}
	return m.upload
}

// Focus focuses the visible form.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.activeForm().Focus()
}

// Blur removes focus.
func (m *Model) Blur() {
	m.focused = false
	m.activeForm().Blur()
}

// SetSize lays out the panel.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	m.upload.SetWidth(w - 4)
	m.employee.SetWidth(w - 4)
	m.result.Width = w
	m.result.Height = max(h-lipgloss.Height(m.upload.View(m.theme))-6, 3)
	m.formView.Width = w
	m.formView.Height = max(h-3, 3)
	m.renderResult()
	m.renderForm()
}

// Show switches to v.
func (m *Model) Show(v View) tea.Cmd {
	if v == m.view {
		return nil
	}
	m.activeForm().Blur()
	m.view = v
	m.renderForm()
	if m.focused {
		return m.activeForm().Focus()
	}
	return nil
}

// Update handles a message routed to the panel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ExtractMsg:
		return m.handleExtract(msg)

	case AutoFillMsg:
		m.setLoading(false)
		if msg.Err != nil {
			m.logger.Error("EXTRACT_AUTOFILL_FAILED", "error", msg.Err)
			return components.Notify(components.ToastError, "Không thể điền biểu mẫu tự động")
		}
		m.fillForm(extract.Form(msg.Form))
		return m.Show(ViewForm)

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Switch):
			return m.Show(1 - m.view)
		case key.Matches(msg, m.keys.AutoFill):
			return m.autoFill()
		case key.Matches(msg, m.keys.JSON):
			m.asJSON = !m.asJSON
			m.renderResult()
			return nil
		case key.Matches(msg, m.keys.Copy):
			return m.copyCurrent()
		case key.Matches(msg, m.keys.Export):
			return m.export()
		case key.Matches(msg, m.keys.PageUp):
			m.scroller().HalfViewUp()
			return nil
		case key.Matches(msg, m.keys.PageDown):
			m.scroller().HalfViewDown()
			return nil
		}
	}

	if m.view == ViewForm {
		submitted, cmd := m.employee.Update(msg)
		m.renderForm()
		if submitted {
			return tea.Batch(cmd, m.export())
		}
		return cmd
	}
	submitted, cmd := m.upload.Update(msg)
	if submitted {
		return tea.Batch(cmd, m.startUpload())
	}
	return cmd
}

func (m *Model) scroller() *viewport.Model {
	if m.view == ViewForm {
		return &m.formView
	}
	return &m.result
}

func (m *Model) setLoading(loading bool) {
	m.loading = loading
	m.upload.SetDisabled(loading)
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m *Model) startUpload() tea.Cmd {
	if m.loading {
		return nil
	}
	path := util.ExpandHome(strings.TrimSpace(m.upload.Value("path")))
	if path == "" {
		return components.Notify(components.ToastInfo, "Vui lòng nhập đường dẫn tệp")
	}

	doc, err := extract.Inspect(path)
	if err != nil {
		m.logger.Warn("EXTRACT_REJECTED", "path", path, "error", err)
		if errors.Is(err, extract.ErrUnsupportedType) {
			return components.Notify(components.ToastError, extract.InvalidFileMessage(displayName(path)))
		}
		return components.Notify(components.ToastError, "Không thể mở tệp: "+displayName(path))
	}

	m.doc = &doc
	m.setLoading(true)
	docType := m.upload.Value("document_type")
	m.logger.Info("EXTRACT_UPLOAD", "file", doc.Name, "mime", doc.MIME, "size", doc.Size, "type", docType)

	b := m.backend
	return tea.Batch(func() tea.Msg {
		res, err := Upload(context.Background(), b, doc, docType)
		return ExtractMsg{Document: doc, Result: res, Err: err}
	}, m.spinner.Tick)
}

func (m *Model) handleExtract(msg ExtractMsg) tea.Cmd {
	m.setLoading(false)
	data, message, alert := Outcome(msg.Result, msg.Err)
	if msg.Err != nil {
		m.logger.Error("EXTRACT_FAILED", "file", msg.Document.Name, "error", msg.Err)
	}

	m.data = data
	m.errText = message
	m.result.GotoTop()
	m.renderResult()
	if data == nil {
		if alert {
			return components.Notify(components.ToastError, RemoteErrorMessage(message))
		}
		return nil
	}

	m.extra = nil
	m.fillForm(extract.DeriveForm(data))
	return m.Show(ViewForm)
}

func (m *Model) fillForm(f extract.Form) {
	m.employee.Reset()
	m.extra = nil
	known := make(map[string]bool, len(extract.Fields))
	for _, fd := range extract.Fields {
		known[fd.Key] = true
	}
	for k, v := range f {
		if known[k] {
			m.employee.SetValue(k, v)
			continue
		}
		if m.extra == nil {
			m.extra = extract.Form{}
		}
		m.extra[k] = v
	}
	m.filled = true
	m.renderForm()
}

func (m *Model) autoFill() tea.Cmd {
	if m.loading || m.data == nil {
		return nil
	}
	m.setLoading(true)
	m.logger.Info("EXTRACT_AUTOFILL")

	b, data := m.backend, m.data
	return tea.Batch(func() tea.Msg {
		form, err := b.AutoFill(context.Background(), data)
		return AutoFillMsg{Form: form, Err: err}
	}, m.spinner.Tick)
}

func (m *Model) export() tea.Cmd {
	if !m.HasForm() {
		return nil
	}
	path, err := extract.Export(m.FormData(), m.exportFormat, m.exportDir)
	if err != nil {
		m.logger.Error("EXTRACT_EXPORT_FAILED", "error", err)
		return components.Notify(components.ToastError, "Không thể lưu biểu mẫu: "+err.Error())
	}
	m.logger.Info("EXTRACT_EXPORT", "path", path)
	return components.Notify(components.ToastSuccess, "Đã lưu biểu mẫu: "+path)
}

func (m *Model) copyCurrent() tea.Cmd {
	var text string
	switch {
	case m.view == ViewForm && m.HasForm():
		b, err := extract.Marshal(m.FormData(), extract.FormatJSON)
		if err != nil {
			return components.Notify(components.ToastError, err.Error())
		}
		text = string(b)
	case m.view == ViewExtract && m.data != nil:
		s, err := extract.PrettyJSON(m.data)
		if err != nil {
			return components.Notify(components.ToastError, err.Error())
		}
		text = s
	default:
		return nil
	}
	if err := m.copy(text); err != nil {
		return components.Notify(components.ToastError, "Không thể sao chép: "+err.Error())
	}
	return components.Notify(components.ToastSuccess, "Đã sao chép JSON")
}

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) renderResult() {
	switch {
	case m.errText != "":
		m.result.SetContent(m.theme.ErrorRow.Render(m.errText))
	case m.data == nil:
		m.result.SetContent(m.theme.Muted.Render(NoData + "\n" + NoDataHint))
	case m.asJSON:
		s, err := extract.PrettyJSON(m.data)
		if err != nil {
			m.result.SetContent(m.theme.ErrorRow.Render(err.Error()))
			return
		}
		m.result.SetContent(components.HighlightJSON(s, m.theme.IsDark))
	default:
		m.result.SetContent(m.renderEntries())
	}
}

func (m *Model) renderEntries() string {
	entries := extract.Entries(m.data)
	if len(entries) == 0 {
		return m.theme.Muted.Render("N/A")
	}
	wrap := lipgloss.NewStyle().Width(max(m.width-4, 10)).PaddingLeft(2)
	rows := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		rows = append(rows, m.theme.FieldKey.Render(e.Label+":"), wrap.Render(e.Value))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderForm() {
	content := m.employee.View(m.theme)
	m.formView.SetContent(content)
	if m.employee.OnButton() {
		m.formView.GotoBottom()
		return
	}
	for i, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "› ") {
			if i < m.formView.YOffset || i >= m.formView.YOffset+m.formView.Height-3 {
				m.formView.SetYOffset(max(i-m.formView.Height/3, 0))
			}
			return
		}
	}
}

func (m *Model) renderViews() string {
	parts := make([]string, 0, 2)
	for _, v := range []View{ViewExtract, ViewForm} {
		if v == m.view {
			parts = append(parts, m.theme.TabActive.Render(v.String()))
		} else {
			parts = append(parts, m.theme.Tab.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// View renders the panel.
func (m *Model) View() string {
	if m.view == ViewForm {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderViews(),
			m.theme.CardTitle.Render("Biểu Mẫu Thông Tin Nhân Viên"),
			m.formView.View(),
		)
	}

	parts := []string{
		m.renderViews(),
		m.upload.View(m.theme),
		m.theme.Muted.Render("Hỗ trợ PDF, DOCX, DOC, TXT, JPG, PNG (tối đa 10MB)"),
	}
	if m.doc != nil {
		line := "📄 " + m.doc.Name + " · " + m.doc.SizeMB()
		if m.doc.OverHint() {
			line += " " + m.theme.ErrorRow.Render("(vượt quá 10MB)")
		}
		parts = append(parts, line)
	}
	if m.loading {
		parts = append(parts, m.spinner.View()+" "+m.theme.Loading.Render("Đang xử lý..."))
	} else {
		parts = append(parts, m.theme.CardTitle.Render("Thông Tin Đã Trích Xuất"))
	}
	parts = append(parts, m.result.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
