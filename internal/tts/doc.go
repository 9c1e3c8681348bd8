// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tts plays synthesized speech for bot turns.
//
// The Controller guarantees that at most one playback is alive at a time.
// Audio fetched from the backend is written to a temp file that the
// controller owns; the file is removed whenever its playback stops, ends or
// fails, and on Close.
//
// Toggling is split in two so a UI can run the slow half off its event loop:
//
//	ticket, starting := ctrl.Begin(turnID)  // fast: stops whatever plays
//	if starting {
//	    started, err := ctrl.Start(ctx, ticket, text) // fetch + play
//	    <-started.Done
//	    ctrl.Finish(started.Gen)
//	}
//
// Toggle does both halves in one call.
package tts
