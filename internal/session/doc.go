// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat send contract shared by the TUI chat
// panel and the line-mode CLI.
//
// A Chat owns one transcript, one pending flag and one suggestion engine.
// Sending is split into BeginSend (validate, append the user turn, mark
// pending), Ask (the HTTP round trip, safe to run off the UI loop) and
// Complete (append the bot turn, clear pending). Send chains the three for
// callers that can block.
package session
