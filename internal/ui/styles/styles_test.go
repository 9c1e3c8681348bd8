// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme()

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"TabActive", theme.TabActive},
		{"BotLabel", theme.BotLabel},
		{"Chip", theme.Chip},
		{"ChipFocused", theme.ChipFocused},
		{"Card", theme.Card},
		{"Heading1", theme.Heading1},
		{"ErrorRow", theme.ErrorRow},
		{"ToastError", theme.ToastError},
	}

	for _, s := range styles {
		if !strings.Contains(s.style.Render("test"), "test") {
			t.Errorf("%s style should render its content", s.name)
		}
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme()
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: got %v, want %v", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// COLOR TESTS
// =============================================================================

func TestPriorityColor(t *testing.T) {
	if PriorityColor("High") != Red {
		t.Error("High should be red")
	}
	if PriorityColor("Medium") != Amber {
		t.Error("Medium should be amber")
	}
	if PriorityColor("Low") != Green {
		t.Error("Low should be green")
	}
	if PriorityColor("Urgent") != TextMuted {
		t.Error("unknown priority should be muted")
	}
}

func TestRenderStatusIndicators(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"success", RenderSuccess("done"), "[OK] done"},
		{"error", RenderError("fail"), "[X] fail"},
		{"warning", RenderWarning("careful"), "[!] careful"},
		{"info", RenderInfo("note"), "[i] note"},
	}
	for _, tt := range tests {
		if !strings.Contains(tt.got, tt.want) {
			t.Errorf("%s: %q does not contain %q", tt.name, tt.got, tt.want)
		}
	}
}
