// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the onboarding backend.
//
// The backend exposes a small set of JSON endpoints (chat, suggestions,
// roadmap, content generation, document extraction) plus a text-to-speech
// endpoint that answers with a WAV body. Every request carries an
// X-Request-ID header so client and server logs can be correlated.
//
// # Key Types
//
//   - Client: thread-safe client bound to one base URL
//   - ClientConfig: base URL and timeouts
//   - ClientError: typed error with ErrorType for handling
//   - SuggestionEntry: one tolerant entry of the suggestions array
//   - ExtractedData: typed view over the extractor output that keeps the raw map
//
// # Usage
//
//	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: "http://127.0.0.1:5001"})
//	resp, err := client.Chat(ctx, "Chính sách nghỉ phép như thế nào?")
//	if api.IsTimeout(err) {
//	    // show a retry hint
//	}
package api
