// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onboard-tui/internal/model"
	"github.com/jeranaias/onboard-tui/internal/session"
	"github.com/jeranaias/onboard-tui/internal/tts"
	"github.com/jeranaias/onboard-tui/internal/ui/components"
)

// Speaker markers for bot turns.
const (
	SpeakerIdle    = "🔈"
	SpeakerPlaying = "🔊"
)

// View renders the panel.
func (m *Model) View() string {
	inputStyle := m.theme.InputBox
	if m.session.Pending() {
		inputStyle = m.theme.InputBoxBusy
	}

	sections := []string{
		m.viewport.View(),
		components.RenderChips(m.theme, m.session.Suggestions().Current(), m.chipFocus, m.width),
		inputStyle.Width(max(m.width-2, 10)).Render(m.input.View()),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTranscript() string {
	var state tts.State
	if m.speech != nil {
		state = m.speech.State()
	}
	selected, hasSelected := m.SelectedTurn()

	var sb strings.Builder
	for i, turn := range m.session.Transcript().Snapshot() {
		if i > 0 {
			sb.WriteString("\n")
		}
		isSelected := hasSelected && turn.ID == selected.ID
		sb.WriteString(m.renderTurn(turn, state, isSelected))
		sb.WriteString("\n")
	}

	if m.session.Pending() {
		sb.WriteString("\n")
		sb.WriteString(m.theme.BotLabel.Render(model.RoleBot.DisplayName()))
		sb.WriteString("\n  ")
		sb.WriteString(m.spinner.View() + " " + m.theme.Loading.Render(session.LoadingText))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) renderTurn(turn model.Turn, state tts.State, selected bool) string {
	var header strings.Builder
	if turn.IsBot() {
		header.WriteString(m.theme.BotLabel.Render(turn.Role.DisplayName()))
		header.WriteString(" ")
		if state.Active(turn.ID) {
			header.WriteString(m.theme.SpeakerPlaying.Render(SpeakerPlaying))
		} else {
			header.WriteString(m.theme.SpeakerIdle.Render(SpeakerIdle))
		}
	} else {
		header.WriteString(m.theme.UserLabel.Render(turn.Role.DisplayName()))
	}
	if m.showTimestamps {
		header.WriteString(" ")
		header.WriteString(m.theme.Timestamp.Render(turn.Clock()))
	}

	bodyWidth := m.width - 4
	body := m.theme.TurnBody
	if bodyWidth > 10 {
		body = body.Width(bodyWidth)
	}
	lines := make([]string, 0, len(turn.Lines()))
	for _, line := range turn.Lines() {
		lines = append(lines, body.Render(line))
	}

	block := header.String() + "\n" + strings.Join(lines, "\n")
	if selected && turn.IsBot() {
		return m.theme.TurnSelected.Render(block)
	}
	return block
}
