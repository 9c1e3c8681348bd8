// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Indigo - Brand color, active tab, headings
var Indigo = lipgloss.AdaptiveColor{Light: "#4338CA", Dark: "#A5B4FC"}

// Teal - User turns, focused inputs
var Teal = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#5EEAD4"}

// Violet - Bot turns, playing speaker marker
var Violet = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#C4B5FD"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

var Green = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
var Red = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
var Amber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
var Blue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// SurfaceDim - Tab bar and status line background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2030"}

// Border - Card and input borders
var Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3F3F56"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#A1A1AA"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#71717A"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}

// ChipBg - Suggestion chip background
var ChipBg = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#312E81"}

// SelectionBg - Selected turn / focused chip highlight
var SelectionBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A5F"}

// =============================================================================
// PRIORITY COLORS
// =============================================================================

// PriorityColor maps checklist priorities to colors. Unknown values are muted.
func PriorityColor(priority string) lipgloss.AdaptiveColor {
	switch priority {
	case "High":
		return Red
	case "Medium":
		return Amber
	case "Low":
		return Green
	}
	return TextMuted
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet holds ASCII markers shown next to colored messages.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators are always rendered so states survive NO_COLOR.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Green).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Red).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an informational message with its indicator.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().Foreground(Blue).
		Render(StatusIndicators.Info + " " + message)
}
