// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the chat transcript types.
//
// # Key Types
//
//   - Role: turn author (user or bot)
//   - Turn: one immutable transcript entry with a session-unique id
//   - Transcript: append-only, ordered list of turns seeded with the greeting
//
// # Usage
//
//	t := model.NewTranscript(model.Greeting)
//	turn := t.Append(model.RoleUser, "help")
//	for _, tt := range t.Snapshot() {
//	    fmt.Println(tt.ID, tt.Role.DisplayName(), tt.Content)
//	}
package model
