// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/onboard-tui/internal/suggest"
	"github.com/jeranaias/onboard-tui/internal/tts"
)

// ReplyMsg carries the displayable bot text for the pending question.
type ReplyMsg struct {
	Reply string
	Err   error
}

// SuggestionsMsg carries a computed suggestion set.
type SuggestionsMsg struct {
	Result suggest.Result
}

// SpeechStartedMsg reports the outcome of starting playback.
type SpeechStartedMsg struct {
	Ticket  tts.Ticket
	Started tts.Started
	Err     error
}

// PlaybackEndedMsg reports that playback generation Gen finished.
type PlaybackEndedMsg struct {
	Gen uint64
}
