// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onboard-tui/internal/model"
	"github.com/jeranaias/onboard-tui/internal/session"
	"github.com/jeranaias/onboard-tui/internal/tts"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// Layout constants
const (
	inputHeight = 3
	chipsHeight = 2
	minViewport = 3
)

// Options configures the panel.
type Options struct {
	Session        *session.Chat
	Speech         *tts.Controller // nil disables read-aloud
	Theme          *styles.Theme
	ShowTimestamps bool
	Logger         *slog.Logger

	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

// Model is the chat panel.
type Model struct {
	session *session.Chat
	speech  *tts.Controller
	theme   *styles.Theme
	keys    KeyMap
	logger  *slog.Logger
	copy    func(string) error

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	width          int
	height         int
	focused        bool
	showTimestamps bool

	// selected is the bot turn targeted by Speak/Copy; 0 follows the latest.
	selected int64
	// chipFocus is the highlighted chip while chip mode is on, else -1.
	chipFocus int
}

// New creates the chat panel.
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
	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Nhập câu hỏi của bạn..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = keys.Newline

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Loading

	m := &Model{
		session:        opts.Session,
		speech:         opts.Speech,
		theme:          theme,
		keys:           keys,
		logger:         logger,
		copy:           copyText,
		input:          ta,
		viewport:       viewport.New(80, 20),
		spinner:        sp,
		showTimestamps: opts.ShowTimestamps,
		chipFocus:      -1,
	}
	m.SetSize(80, 24)
	return m
}

// Init starts the first suggestion computation.
func (m *Model) Init() tea.Cmd {
	return m.suggestCmd()
}

// Title is the tab title.
func (m *Model) Title() string { return "Trợ lý" }

// Busy reports whether a chat request is in flight.
func (m *Model) Busy() bool { return m.session.Pending() }

// Keys returns the panel bindings.
func (m *Model) Keys() KeyMap { return m.keys }

// Focus focuses the input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes focus.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// SetSize lays out the panel within w x h.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	m.input.SetWidth(max(w-4, 10))
	vh := h - inputHeight - 2 - chipsHeight - 1
	if vh < minViewport {
		vh = minViewport
	}
	m.viewport.Width = w
	m.viewport.Height = vh
	m.refresh()
}

// SetShowTimestamps toggles the HH:MM:SS stamp of each turn.
func (m *Model) SetShowTimestamps(show bool) {
	m.showTimestamps = show
	m.refresh()
}

// Input returns the current input text.
func (m *Model) Input() string { return m.input.Value() }

// SetInput replaces the input text.
func (m *Model) SetInput(s string) { m.input.SetValue(s) }

// =============================================================================
// UPDATE
// =============================================================================

// Update handles a message routed to the panel.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		turn := m.session.Complete(msg.Reply)
		m.logger.Debug("CHAT_TURN_APPENDED", "turn_id", turn.ID, "failed", msg.Err != nil)
		m.refresh()
		return m.suggestCmd()

	case SuggestionsMsg:
		if m.session.Suggestions().Apply(msg.Result) {
			if n := len(m.session.Suggestions().Current()); m.chipFocus >= n {
				m.chipFocus = n - 1
			}
		}
		return nil

	case SpeechStartedMsg:
		m.refresh()
		if msg.Err != nil {
			if errors.Is(msg.Err, tts.ErrSuperseded) {
				return nil
			}
			return components.Notify(components.ToastError, "Không thể phát âm thanh: "+msg.Err.Error())
		}
		return waitPlayback(msg.Started)

	case PlaybackEndedMsg:
		if m.speech != nil && m.speech.Finish(msg.Gen) {
			m.refresh()
		}
		return nil

	case spinner.TickMsg:
		if !m.session.Pending() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.chipFocus >= 0 {
		if cmd, handled := m.handleChipKey(msg); handled {
			return cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		return m.send(m.input.Value())
	case key.Matches(msg, m.keys.Chip1):
		return m.sendChip(0)
	case key.Matches(msg, m.keys.Chip2):
		return m.sendChip(1)
	case key.Matches(msg, m.keys.Chip3):
		return m.sendChip(2)
	case key.Matches(msg, m.keys.FocusChips):
		if len(m.session.Suggestions().Current()) > 0 {
			m.chipFocus = 0
		}
		return nil
	case key.Matches(msg, m.keys.SelectPrev):
		m.moveSelection(-1)
		return nil
	case key.Matches(msg, m.keys.SelectNext):
		m.moveSelection(1)
		return nil
	case key.Matches(msg, m.keys.Speak):
		return m.speak()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return nil
	}

	if m.session.Pending() {
		// Input is read-only while a request is in flight.
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleChipKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	n := len(m.session.Suggestions().Current())
	switch {
	case key.Matches(msg, m.keys.Send):
		i := m.chipFocus
		m.chipFocus = -1
		return m.sendChip(i), true
	case key.Matches(msg, m.keys.ChipRight):
		if n > 0 {
			m.chipFocus = (m.chipFocus + 1) % n
		}
		return nil, true
	case key.Matches(msg, m.keys.ChipLeft):
		if n > 0 {
			m.chipFocus = (m.chipFocus - 1 + n) % n
		}
		return nil, true
	case key.Matches(msg, m.keys.LeaveChips):
		m.chipFocus = -1
		return nil, true
	}
	// Any other key returns to the input.
	m.chipFocus = -1
	return nil, false
}

// send runs the send contract for text. Rejected input leaves everything
// untouched.
func (m *Model) send(text string) tea.Cmd {
	if _, err := m.session.BeginSend(text); err != nil {
		m.logger.Debug("CHAT_SEND_REJECTED", "error", err)
		return nil
	}
	m.input.Reset()
	m.selected = 0
	m.refresh()

	return tea.Batch(
		m.askCmd(text),
		m.suggestCmd(),
		m.spinner.Tick,
	)
}

func (m *Model) sendChip(i int) tea.Cmd {
	text, ok := m.session.Suggestions().Chip(i)
	if !ok {
		return nil
	}
	return m.send(text)
}

func (m *Model) askCmd(question string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		reply, err := s.Ask(context.Background(), question)
		return ReplyMsg{Reply: reply, Err: err}
	}
}

// suggestCmd reserves a sequence number now, while the transcript is in
// the state the suggestions describe, and computes in the background.
func (m *Model) suggestCmd() tea.Cmd {
	seq, history := m.session.SuggestionRequest()
	engine := m.session.Suggestions()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return SuggestionsMsg{Result: engine.Compute(ctx, seq, history)}
	}
}

// =============================================================================
// SELECTION, SPEECH AND CLIPBOARD
// =============================================================================

// SelectedTurn returns the bot turn targeted by Speak and Copy.
func (m *Model) SelectedTurn() (model.Turn, bool) {
	t := m.session.Transcript()
	if m.selected != 0 {
		if turn, ok := t.Get(m.selected); ok {
			return turn, true
		}
	}
	return t.LastBot()
}

func (m *Model) moveSelection(delta int) {
	ids := m.session.Transcript().BotIDs()
	if len(ids) == 0 {
		return
	}
	cur, _ := m.SelectedTurn()
	idx := len(ids) - 1
	for i, id := range ids {
		if id == cur.ID {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids)-1 {
		m.selected = 0
	} else {
		m.selected = ids[idx]
	}
	m.refresh()
}

func (m *Model) speak() tea.Cmd {
	if m.speech == nil {
		return components.Notify(components.ToastInfo, "Chức năng đọc văn bản đang tắt")
	}
	turn, ok := m.SelectedTurn()
	if !ok {
		return nil
	}

	ticket, start := m.speech.Begin(turn.ID)
	m.refresh()
	if !start {
		return nil
	}

	speech := m.speech
	text := turn.Content
	return func() tea.Msg {
		started, err := speech.Start(context.Background(), ticket, text)
		return SpeechStartedMsg{Ticket: ticket, Started: started, Err: err}
	}
}

func waitPlayback(s tts.Started) tea.Cmd {
	if s.Done == nil {
		return nil
	}
	return func() tea.Msg {
		<-s.Done
		return PlaybackEndedMsg{Gen: s.Gen}
	}
}

func (m *Model) copySelected() tea.Cmd {
	turn, ok := m.SelectedTurn()
	if !ok {
		return nil
	}
	if err := m.copy(turn.Content); err != nil {
		return components.Notify(components.ToastError, "Không thể sao chép: "+err.Error())
	}
	return components.Notify(components.ToastSuccess, "Đã sao chép tin nhắn")
}

// refresh re-renders the transcript and scrolls to the bottom.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Suggestions returns the chips on display.
func (m *Model) Suggestions() []string {
	return m.session.Suggestions().Current()
}
