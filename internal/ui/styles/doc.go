// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the onboard TUI.

All colors use Lip Gloss AdaptiveColor so the same palette works on light
and dark terminals.

# Color System (colors.go)

  - Indigo - Brand color, active tab, headings
  - Teal - User turns, focused inputs
  - Violet - Bot turns and the playing speaker marker
  - Green, Red, Amber - Success, error and warning states

# Theme (theme.go)

Theme bundles the lipgloss styles for every panel: tab bar, chat turns,
suggestion chips, forms, result cards, toasts and the status line.

	theme := styles.NewTheme()
	fmt.Println(theme.Heading1.Render("Lộ trình"))

# Status helpers

RenderSuccess, RenderError, RenderWarning and RenderInfo prefix messages
with ASCII indicators so states stay readable without color.
*/
package styles
