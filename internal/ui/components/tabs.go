// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Key   string // shortcut shown before the title, e.g. "F1"
	Title string
	Busy  bool // a request is in flight in that panel
}

// RenderTabs renders the brand followed by the tabs, filling width.
func RenderTabs(theme *styles.Theme, brand string, tabs []Tab, active, width int) string {
	parts := []string{theme.Brand.Render(brand)}
	for i, t := range tabs {
		label := t.Title
		if t.Key != "" {
			label = t.Key + " " + label
		}
		if t.Busy {
			label += " …"
		}
		if i == active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.Tab.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if width > 0 {
		return theme.TabBar.Width(width).Render(bar)
	}
	return theme.TabBar.Render(bar)
}
