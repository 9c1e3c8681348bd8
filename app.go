// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/config"
	"github.com/jeranaias/onboard-tui/internal/session"
	"github.com/jeranaias/onboard-tui/internal/tts"
	"github.com/jeranaias/onboard-tui/internal/ui/chat"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
	"github.com/jeranaias/onboard-tui/internal/ui/content"
	"github.com/jeranaias/onboard-tui/internal/ui/extractor"
	"github.com/jeranaias/onboard-tui/internal/ui/roadmap"
	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// =============================================================================
// PANELS
// =============================================================================

// panel is what the shell needs from each tab.
type panel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(w, h int)
	Focus() tea.Cmd
	Blur()
	Busy() bool
	Title() string
}

// chromeHeight is the tab bar plus the status line.
const chromeHeight = 2

// configReloadedMsg carries a config file change from the watcher.
type configReloadedMsg struct {
	Config *config.Config
	Err    error
}

// appOptions wires the shell.
type appOptions struct {
	Config *config.Config
	Client *api.Client
	Speech *tts.Controller // nil when read-aloud is off
	Theme  *styles.Theme
	Logger *slog.Logger
	Tab    string // config.Tabs entry; empty uses ui.default_tab

	// Notices are shown as toasts once the program starts.
	Notices []string

	// CopyText replaces the system clipboard in tests.
	CopyText func(string) error
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// App is the Bubble Tea model of the tab shell. Keys go to the active
// panel only; every other message is offered to all panels, which ignore
// the types they do not own.
type App struct {
	theme  *styles.Theme
	cfg    *config.Config
	client *api.Client
	speech *tts.Controller
	logger *slog.Logger

	chat      *chat.Model
	roadmap   *roadmap.Model
	content   *content.Model
	extractor *extractor.Model
	panels    []panel
	active    int

	toasts  *components.Toasts
	notices []string

	width  int
	height int
}

// newApp builds the shell and its four panels.
func newApp(opts appOptions) *App {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	a := &App{
		theme:   theme,
		cfg:     cfg,
		client:  opts.Client,
		speech:  opts.Speech,
		logger:  logger,
		toasts:  components.NewToasts(),
		notices: opts.Notices,
	}

	a.chat = chat.New(chat.Options{
		Session:        session.New(opts.Client, opts.Client, logger),
		Speech:         opts.Speech,
		Theme:          theme,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		Logger:         logger,
		CopyText:       opts.CopyText,
	})
	a.roadmap = roadmap.New(opts.Client, theme, logger)
	a.content = content.New(opts.Client, theme, logger)
	a.extractor = extractor.New(extractor.Options{
		Backend:      opts.Client,
		Theme:        theme,
		Logger:       logger,
		DocumentType: cfg.Extract.DocumentType,
		ExportFormat: cfg.Extract.ExportFormat,
		ExportDir:    cfg.Extract.ExportDir,
		CopyText:     opts.CopyText,
	})
	a.panels = []panel{a.chat, a.roadmap, a.content, a.extractor}

	tab := opts.Tab
	if tab == "" {
		tab = cfg.UI.DefaultTab
	}
	a.active = tabIndex(tab)
	return a
}

// tabIndex maps a config tab name to its panel, chat when unknown.
func tabIndex(name string) int {
	for i, t := range config.Tabs {
		if t == name {
			return i
		}
	}
	return 0
}

// validTab reports whether name is a tab; empty means the default.
func validTab(name string) bool {
	if name == "" {
		return true
	}
	for _, t := range config.Tabs {
		if t == name {
			return true
		}
	}
	return false
}

// Init starts every panel and focuses the active one.
func (a *App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.panels)+len(a.notices)+1)
	for _, p := range a.panels {
		cmds = append(cmds, p.Init())
	}
	cmds = append(cmds, a.panels[a.active].Focus())
	for _, n := range a.notices {
		cmds = append(cmds, a.toasts.Info(n))
	}
	return tea.Batch(cmds...)
}

// Active returns the index of the visible panel.
func (a *App) Active() int { return a.active }

// Toasts returns the visible toasts.
func (a *App) Toasts() []components.Toast { return a.toasts.Items() }

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		bodyHeight := max(msg.Height-chromeHeight, 1)
		for _, p := range a.panels {
			p.SetSize(msg.Width, bodyHeight)
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case components.ToastMsg:
		return a, a.toasts.Add(msg.Kind, msg.Message)

	case components.ToastTickMsg:
		return a, a.toasts.Update(msg)

	case configReloadedMsg:
		return a, a.applyConfig(msg)
	}

	cmds := make([]tea.Cmd, 0, len(a.panels))
	for _, p := range a.panels {
		cmds = append(cmds, p.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

// handleKey processes shell keys and forwards the rest to the active panel.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "f1":
		return a.switchTo(0)
	case "f2":
		return a.switchTo(1)
	case "f3":
		return a.switchTo(2)
	case "f4":
		return a.switchTo(3)
	case "ctrl+right":
		return a.switchTo((a.active + 1) % len(a.panels))
	case "ctrl+left":
		return a.switchTo((a.active + len(a.panels) - 1) % len(a.panels))
	case "esc":
		if len(a.toasts.Items()) > 0 {
			a.toasts.Dismiss()
			return nil
		}
	}
	return a.panels[a.active].Update(msg)
}

// switchTo moves focus to panel i. In-flight requests keep running and
// land in their own panel.
func (a *App) switchTo(i int) tea.Cmd {
	if i == a.active || i < 0 || i >= len(a.panels) {
		return nil
	}
	a.panels[a.active].Blur()
	a.active = i
	a.logger.Debug("TAB_SWITCH", "tab", config.Tabs[i])
	return a.panels[i].Focus()
}

// applyConfig takes a reloaded config. Load errors keep the running
// config and surface as a toast.
func (a *App) applyConfig(msg configReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		a.logger.Warn("CONFIG_RELOAD_FAILED", "error", msg.Err)
		return a.toasts.Error("Không thể tải lại cấu hình: " + msg.Err.Error())
	}
	cfg := msg.Config
	prev := a.cfg
	a.cfg = cfg
	config.SetGlobal(cfg)

	if a.client != nil && cfg.API.BaseURL != prev.API.BaseURL {
		a.client.SetBaseURL(cfg.API.BaseURL)
		a.logger.Info("CONFIG_BASE_URL", "from", prev.API.BaseURL, "to", cfg.API.BaseURL)
	}
	a.extractor.SetExport(cfg.Extract.ExportFormat, cfg.Extract.ExportDir)
	a.chat.SetShowTimestamps(cfg.UI.ShowTimestamps)
	a.logger.Info("CONFIG_RELOADED")
	return a.toasts.Info("Đã tải lại cấu hình")
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the tab bar, the active panel, toasts and the status line.
func (a *App) View() string {
	tabs := make([]components.Tab, len(a.panels))
	for i, p := range a.panels {
		tabs[i] = components.Tab{Key: "F" + string(rune('1'+i)), Title: p.Title(), Busy: p.Busy()}
	}
	bar := components.RenderTabs(a.theme, "onboard", tabs, a.active, a.width)

	body := a.panels[a.active].View()
	if a.height > 0 {
		body = lipgloss.NewStyle().
			Height(max(a.height-chromeHeight, 1)).
			MaxHeight(max(a.height-chromeHeight, 1)).
			Render(body)
	}
	if toasts := a.toasts.View(a.theme, a.width); toasts != "" {
		body = overlayBottom(body, toasts)
	}

	return lipgloss.JoinVertical(lipgloss.Left, bar, body, a.statusLine())
}

// statusLine lists the active panel's bindings and the shell's own.
func (a *App) statusLine() string {
	bindings := append(panelHelp(a.panels[a.active]),
		key.NewBinding(key.WithHelp("F1-F4", "chuyển tab")),
		key.NewBinding(key.WithHelp("Ctrl+C", "thoát")),
	)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, a.theme.KeyHint.Render(h.Key)+" "+a.theme.KeyDesc.Render(h.Desc))
	}
	line := strings.Join(parts, "  ")

	if a.width > 0 {
		// StatusLine pads one column on each side.
		inner := a.width - 2
		if lipgloss.Width(line) > inner {
			line = runewidth.Truncate(stripHints(bindings), inner, "…")
		}
		return a.theme.StatusLine.Width(a.width).Render(line)
	}
	return a.theme.StatusLine.Render(line)
}

// stripHints is the unstyled status line, used when it must be cut.
func stripHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if h := b.Help(); h.Key != "" {
			parts = append(parts, h.Key+" "+h.Desc)
		}
	}
	return strings.Join(parts, "  ")
}

func panelHelp(p panel) []key.Binding {
	switch p := p.(type) {
	case *chat.Model:
		return p.Keys().ShortHelp()
	case *content.Model:
		return p.Keys().ShortHelp()
	case *extractor.Model:
		return p.Keys().ShortHelp()
	}
	return nil
}

// overlayBottom replaces the last lines of body with overlay.
func overlayBottom(body, overlay string) string {
	lines := strings.Split(body, "\n")
	over := strings.Split(overlay, "\n")
	if len(over) >= len(lines) {
		return overlay
	}
	copy(lines[len(lines)-len(over):], over)
	return strings.Join(lines, "\n")
}
