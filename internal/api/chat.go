// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// maxAudioBytes caps a TTS answer. Sixteen kHz mono WAV is ~32 KB/s.
const maxAudioBytes = 64 << 20

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat posts a question and returns the response envelope.
func (c *Client) Chat(ctx context.Context, question string) (*ChatResponse, error) {
	var result ChatResponse
	if err := c.postJSON(ctx, "/api/chatbot", ChatRequest{Question: question}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Suggestions posts the user-turn history and returns the suggestions array.
// A missing or non-array field yields an empty slice without error.
func (c *Client) Suggestions(ctx context.Context, history []string) ([]SuggestionEntry, error) {
	if history == nil {
		history = []string{}
	}

	var result suggestionsResponse
	if err := c.postJSON(ctx, "/api/chatbot/suggestions", SuggestionsRequest{History: history}, &result); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(result.Suggestions)
	if len(raw) == 0 || raw[0] != '[' {
		return []SuggestionEntry{}, nil
	}

	var entries []SuggestionEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []SuggestionEntry{}, nil
	}
	return entries, nil
}

// Synthesize asks the backend to vocalize text and returns the audio bytes
// (WAV). It uses the upload timeout since synthesis runs a model.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/tts"), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(c.uploadClient, req)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read audio", Cause: err}
	}
	return audio, nil
}
