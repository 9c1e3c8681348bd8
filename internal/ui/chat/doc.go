// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel of the TUI.
//
// The panel drives a session.Chat: Enter sends the input, the backend call
// runs as a tea.Cmd and comes back as a ReplyMsg, and every transcript
// change schedules a suggestion recomputation whose result is applied only
// if it is the newest. Bot turns can be read aloud through the shared
// tts.Controller; the speaker marker of each turn reflects whether that
// turn is the one playing.
package chat
