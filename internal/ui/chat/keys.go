// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the chat panel bindings.
type KeyMap struct {
	Send       key.Binding
	Newline    key.Binding
	Chip1      key.Binding
	Chip2      key.Binding
	Chip3      key.Binding
	FocusChips key.Binding
	ChipLeft   key.Binding
	ChipRight  key.Binding
	LeaveChips key.Binding
	SelectPrev key.Binding
	SelectNext key.Binding
	Speak      key.Binding
	Copy       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// DefaultKeyMap returns the default chat bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "gửi"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("Alt+Enter", "xuống dòng"),
		),
		Chip1: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("Alt+1..3", "gợi ý"),
		),
		Chip2:      key.NewBinding(key.WithKeys("alt+2")),
		Chip3:      key.NewBinding(key.WithKeys("alt+3")),
		FocusChips: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "chọn gợi ý"),
		),
		ChipLeft:   key.NewBinding(key.WithKeys("left", "shift+tab")),
		ChipRight:  key.NewBinding(key.WithKeys("right", "tab")),
		LeaveChips: key.NewBinding(key.WithKeys("esc", "up")),
		SelectPrev: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("Alt+↑/↓", "chọn tin nhắn"),
		),
		SelectNext: key.NewBinding(key.WithKeys("alt+down")),
		Speak: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "đọc"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "sao chép"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp/PgDn", "cuộn"),
		),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Newline, k.Chip1, k.FocusChips, k.SelectPrev, k.Speak, k.Copy}
}
