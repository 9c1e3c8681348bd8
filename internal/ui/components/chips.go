// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/ui/styles"
	"github.com/jeranaias/onboard-tui/internal/util"
)

// MaxChipWidth caps the label of a single chip.
const MaxChipWidth = 40

// RenderChips renders suggestions as "1 label" chips. focused is the index
// of the highlighted chip, or -1. Chips wrap onto new rows to fit width.
func RenderChips(theme *styles.Theme, chips []string, focused, width int) string {
	if len(chips) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0
	for i, c := range chips {
		style := theme.Chip
		if i == focused {
			style = theme.ChipFocused
		}
		label := strconv.Itoa(i+1) + " " + util.TruncateWidth(c, MaxChipWidth)
		rendered := style.Render(label)
		w := lipgloss.Width(rendered)
		if width > 0 && rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, strings.Join(row, ""))
			row, rowWidth = nil, 0
		}
		row = append(row, rendered)
		rowWidth += w
	}
	rows = append(rows, strings.Join(row, ""))
	return strings.Join(rows, "\n")
}
