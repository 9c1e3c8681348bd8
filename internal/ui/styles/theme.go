// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// SHELL STYLES
	// ==========================================================================

	App        lipgloss.Style
	TabBar     lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
	Brand      lipgloss.Style
	StatusLine lipgloss.Style
	KeyHint    lipgloss.Style
	KeyDesc    lipgloss.Style

	// ==========================================================================
	// CHAT STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	BotLabel       lipgloss.Style
	Timestamp      lipgloss.Style
	TurnBody       lipgloss.Style
	TurnSelected   lipgloss.Style
	Loading        lipgloss.Style
	SpeakerIdle    lipgloss.Style
	SpeakerPlaying lipgloss.Style
	InputBox       lipgloss.Style
	InputBoxBusy   lipgloss.Style

	// ==========================================================================
	// SUGGESTION CHIP STYLES
	// ==========================================================================

	Chip        lipgloss.Style
	ChipFocused lipgloss.Style
	ChipIndex   lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormLabel        lipgloss.Style
	FormLabelFocused lipgloss.Style
	Option           lipgloss.Style
	OptionSelected   lipgloss.Style
	Button           lipgloss.Style
	ButtonFocused    lipgloss.Style
	ButtonDisabled   lipgloss.Style

	// ==========================================================================
	// RESULT STYLES
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Heading1  lipgloss.Style
	Heading2  lipgloss.Style
	Heading3  lipgloss.Style
	Bullet    lipgloss.Style
	Number    lipgloss.Style
	Bold      lipgloss.Style
	Missing   lipgloss.Style
	FieldKey  lipgloss.Style

	// ==========================================================================
	// FEEDBACK STYLES
	// ==========================================================================

	ErrorRow     lipgloss.Style
	SuccessRow   lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()

	// Shell
	t.TabBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 2)
	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginRight(2)
	t.StatusLine = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)
	t.KeyHint = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.KeyDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Chat
	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)
	t.BotLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.TurnBody = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)
	t.TurnSelected = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Violet)
	t.Loading = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)
	t.SpeakerIdle = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.SpeakerPlaying = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)
	t.InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Teal)
	t.InputBoxBusy = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	// Chips
	t.Chip = lipgloss.NewStyle().
		Foreground(Indigo).
		Background(ChipBg).
		Padding(0, 1).
		MarginRight(1)
	t.ChipFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1).
		MarginRight(1)
	t.ChipIndex = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Forms
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FormLabelFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)
	t.Option = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.OptionSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Teal).
		Padding(0, 1)
	t.Button = lipgloss.NewStyle().
		Foreground(Indigo).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	t.ButtonFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 2)
	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	// Results
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.Heading1 = lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(Indigo)
	t.Heading2 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.Heading3 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)
	t.Bullet = lipgloss.NewStyle().
		Foreground(Teal)
	t.Number = lipgloss.NewStyle().
		Foreground(Teal)
	t.Bold = lipgloss.NewStyle().
		Bold(true)
	t.Missing = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.FieldKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	// Feedback
	t.ErrorRow = lipgloss.NewStyle().
		Foreground(Red)
	t.SuccessRow = lipgloss.NewStyle().
		Foreground(Green)
	t.ToastError = lipgloss.NewStyle().
		Foreground(Red).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Red).
		Padding(0, 1)
	t.ToastInfo = lipgloss.NewStyle().
		Foreground(Blue).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(0, 1)
	t.ToastSuccess = lipgloss.NewStyle().
		Foreground(Green).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Green).
		Padding(0, 1)
	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
