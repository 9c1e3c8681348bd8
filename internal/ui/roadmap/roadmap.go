// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roadmap provides the learning roadmap panel of the TUI.
package roadmap

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// Result texts shown in place of a roadmap.
const (
	MissingText = "Không thể tạo lộ trình lúc này."
	ErrorText   = "Xin lỗi, có lỗi xảy ra khi tạo lộ trình. Vui lòng thử lại sau."
)

// FallbackPositions is used when the positions endpoint fails.
var FallbackPositions = []string{"developer", "designer", "marketing", "hr", "sales"}

// Levels are the experience levels offered, in display order.
var Levels = []components.Option{
	{Value: "fresher", Label: "Fresher (0-1 năm)"},
	{Value: "junior", Label: "Junior (1-3 năm)"},
	{Value: "senior", Label: "Senior (3+ năm)"},
}

// Backend is the part of the API client the panel needs.
type Backend interface {
	GenerateRoadmap(ctx context.Context, position, level string) (*api.RoadmapResponse, error)
	Positions(ctx context.Context) ([]string, error)
}

// PositionsMsg carries the positions offered by the backend.
type PositionsMsg struct {
	Positions []string
	Err       error
}

// RoadmapMsg carries the text to render.
type RoadmapMsg struct {
	Text string
	Err  error
}

// Text maps a generate round trip to the text shown.
func Text(resp *api.RoadmapResponse, err error) string {
	if err != nil {
		return ErrorText
	}
	if resp == nil || resp.Roadmap == nil || strings.TrimSpace(*resp.Roadmap) == "" {
		return MissingText
	}
	return *resp.Roadmap
}

// LevelLabel returns the display label of a level value.
func LevelLabel(level string) string {
	for _, l := range Levels {
		if l.Value == level {
			return l.Label
		}
	}
	return level
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the roadmap panel.
type Model struct {
	backend Backend
	theme   *styles.Theme
	logger  *slog.Logger
	copy    func(string) error

	form     *components.Form
	result   viewport.Model
	spinner  spinner.Model
	copyKey  key.Binding
	scrollUp key.Binding
	scrollDn key.Binding

	loading  bool
	roadmap  string
	position string
	level    string
	width    int
	height   int
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
		form: components.NewForm("Tạo lộ trình",
			components.Field{Key: "position", Label: "Vị trí công việc", Kind: components.FieldSelect, Required: true},
			components.Field{Key: "experience_level", Label: "Mức độ kinh nghiệm", Kind: components.FieldSelect, Options: Levels, Default: "fresher"},
		),
		result:   viewport.New(80, 10),
		spinner:  sp,
		copyKey:  key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "sao chép")),
		scrollUp: key.NewBinding(key.WithKeys("pgup")),
		scrollDn: key.NewBinding(key.WithKeys("pgdown")),
	}
	m.SetSize(80, 24)
	return m
}

// Init loads the positions.
func (m *Model) Init() tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		positions, err := b.Positions(context.Background())
		return PositionsMsg{Positions: positions, Err: err}
	}
}

// Title is the tab title.
func (m *Model) Title() string { return "Lộ trình" }

// Busy reports whether a roadmap is being generated.
func (m *Model) Busy() bool { return m.loading }

// Focus focuses the form.
func (m *Model) Focus() tea.Cmd { return m.form.Focus() }

// Blur removes focus.
func (m *Model) Blur() { m.form.Blur() }

// Roadmap returns the text on display.
func (m *Model) Roadmap() string { return m.roadmap }

// SetSize lays out the panel.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	m.form.SetWidth(w - 4)
	m.result.Width = w
	m.result.Height = max(h-9, 3)
	m.render()
}

// Update handles a message routed to the panel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PositionsMsg:
		positions := msg.Positions
		if msg.Err != nil || len(positions) == 0 {
			m.logger.Warn("ROADMAP_POSITIONS_FALLBACK", "error", msg.Err)
			positions = FallbackPositions
		}
		opts := make([]components.Option, len(positions))
		for i, p := range positions {
			opts[i] = components.Option{Value: p, Label: p}
		}
		m.form.SetOptions("position", opts)
		return nil

	case RoadmapMsg:
		m.loading = false
		m.form.SetDisabled(false)
		m.roadmap = msg.Text
		m.render()
		m.result.GotoTop()
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
		case key.Matches(msg, m.copyKey):
			return m.copyRoadmap()
		case key.Matches(msg, m.scrollUp):
			m.result.HalfViewUp()
			return nil
		case key.Matches(msg, m.scrollDn):
			m.result.HalfViewDown()
			return nil
		}
	}

	submitted, cmd := m.form.Update(msg)
	if submitted {
		return tea.Batch(cmd, m.generate())
	}
	return cmd
}

func (m *Model) generate() tea.Cmd {
	position := m.form.Value("position")
	level := m.form.Value("experience_level")
	if position == "" || m.loading {
		return nil
	}

	m.loading = true
	m.form.SetDisabled(true)
	m.position, m.level = position, level
	m.logger.Info("ROADMAP_GENERATE", "position", position, "level", level)

	b := m.backend
	return tea.Batch(func() tea.Msg {
		resp, err := b.GenerateRoadmap(context.Background(), position, level)
		return RoadmapMsg{Text: Text(resp, err), Err: err}
	}, m.spinner.Tick)
}

func (m *Model) copyRoadmap() tea.Cmd {
	if m.roadmap == "" {
		return nil
	}
	if err := m.copy(m.roadmap); err != nil {
		return components.Notify(components.ToastError, "Không thể sao chép: "+err.Error())
	}
	return components.Notify(components.ToastSuccess, "Đã sao chép lộ trình")
}

func (m *Model) render() {
	if m.roadmap == "" {
		m.result.SetContent(m.theme.Muted.Render("Chọn vị trí và mức độ kinh nghiệm rồi nhấn \"Tạo lộ trình\"."))
		return
	}
	m.result.SetContent(components.RenderMarkdown(m.theme, m.roadmap, m.width-2))
}

// View renders the panel.
func (m *Model) View() string {
	parts := []string{m.form.View(m.theme)}
	switch {
	case m.loading:
		parts = append(parts, m.spinner.View()+" "+m.theme.Loading.Render("Đang tạo lộ trình..."))
	case m.roadmap != "":
		parts = append(parts, m.theme.CardTitle.Render("Lộ trình cho "+m.position)+" "+
			m.theme.Muted.Render(LevelLabel(m.level)))
	}
	parts = append(parts, m.result.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
