// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind selects the color and indicator of a toast.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastError
	ToastSuccess
)

// ToastDuration is how long info and success toasts stay up.
const ToastDuration = 4 * time.Second

// ErrorToastDuration is longer so alerts can be read.
const ErrorToastDuration = 8 * time.Second

// Toast is a non-blocking notification. It stands in for browser alerts.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the toast should be dropped at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST STACK
// =============================================================================

// Toasts is the stack of visible toasts, newest last.
type Toasts struct {
	items  []Toast
	nextID int
	max    int
	now    func() time.Time
}

// NewToasts creates an empty stack holding at most three toasts.
func NewToasts() *Toasts {
	return &Toasts{max: 3, now: time.Now}
}

// Add pushes a toast and returns the tick command that expires it.
func (s *Toasts) Add(kind ToastKind, message string) tea.Cmd {
	s.nextID++
	d := ToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}
	s.items = append(s.items, Toast{
		ID:        s.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: s.now(),
		Duration:  d,
	})
	if len(s.items) > s.max {
		s.items = s.items[len(s.items)-s.max:]
	}
	return ToastTickCmd()
}

// Error is Add(ToastError, message).
func (s *Toasts) Error(message string) tea.Cmd { return s.Add(ToastError, message) }

// Info is Add(ToastInfo, message).
func (s *Toasts) Info(message string) tea.Cmd { return s.Add(ToastInfo, message) }

// Success is Add(ToastSuccess, message).
func (s *Toasts) Success(message string) tea.Cmd { return s.Add(ToastSuccess, message) }

// Items returns the visible toasts.
func (s *Toasts) Items() []Toast {
	return append([]Toast(nil), s.items...)
}

// Dismiss removes every toast.
func (s *Toasts) Dismiss() {
	s.items = nil
}

// Update drops expired toasts on tick and keeps ticking while any remain.
func (s *Toasts) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(ToastTickMsg)
	if !ok {
		return nil
	}
	kept := s.items[:0]
	for _, t := range s.items {
		if !t.Expired(tick.Time) {
			kept = append(kept, t)
		}
	}
	s.items = kept
	if len(s.items) == 0 {
		return nil
	}
	return ToastTickCmd()
}

// ToastTickMsg expires toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks every 500ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// View renders the stack right-aligned within width.
func (s *Toasts) View(theme *styles.Theme, width int) string {
	if len(s.items) == 0 {
		return ""
	}
	maxWidth := 60
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	rendered := make([]string, 0, len(s.items))
	for _, t := range s.items {
		var style lipgloss.Style
		var icon string
		switch t.Kind {
		case ToastError:
			style, icon = theme.ToastError, styles.StatusIndicators.Error
		case ToastSuccess:
			style, icon = theme.ToastSuccess, styles.StatusIndicators.Success
		default:
			style, icon = theme.ToastInfo, styles.StatusIndicators.Info
		}
		rendered = append(rendered, style.Width(maxWidth).Render(icon+" "+t.Message))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return stack
}

// ToastMsg asks the shell to show a toast. Panels emit it with Notify.
type ToastMsg struct {
	Kind    ToastKind
	Message string
}

// Notify returns a command that emits a ToastMsg.
func Notify(kind ToastKind, message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Kind: kind, Message: message}
	}
}
