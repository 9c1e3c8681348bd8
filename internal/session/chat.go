// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/model"
	"github.com/jeranaias/onboard-tui/internal/suggest"
)

// Canned bot replies.
const (
	// ApologyMissing replaces an answer without a usable response field.
	ApologyMissing = "Xin lỗi, tôi không thể xử lý yêu cầu này lúc này."
	// ApologyNetwork replaces an answer that failed in transport or status.
	ApologyNetwork = "Xin lỗi, có lỗi xảy ra khi kết nối với server. Vui lòng thử lại sau."
	// LoadingText is shown while a request is pending.
	LoadingText = "Đang xử lý..."
)

// Sentinel errors returned by BeginSend.
var (
	ErrEmptyInput = errors.New("message is empty")
	ErrBusy       = errors.New("a request is already pending")
)

// ChatBackend answers questions. *api.Client satisfies it.
type ChatBackend interface {
	Chat(ctx context.Context, question string) (*api.ChatResponse, error)
}

// Chat is one chat session.
type Chat struct {
	id          string
	transcript  *model.Transcript
	backend     ChatBackend
	suggestions *suggest.Engine
	logger      *slog.Logger

	mu      sync.Mutex
	pending bool
}

// New creates a session seeded with the greeting. suggester may be nil for
// local-only suggestions.
func New(backend ChatBackend, suggester suggest.Backend, logger *slog.Logger) *Chat {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session_id", id)
	return &Chat{
		id:          id,
		transcript:  model.NewTranscript(model.Greeting),
		backend:     backend,
		suggestions: suggest.NewEngine(suggester, logger),
		logger:      logger,
	}
}

// ID returns the session id attached to log records.
func (c *Chat) ID() string { return c.id }

// Transcript returns the session transcript.
func (c *Chat) Transcript() *model.Transcript { return c.transcript }

// Suggestions returns the session suggestion engine.
func (c *Chat) Suggestions() *suggest.Engine { return c.suggestions }

// Pending reports whether a request is in flight.
func (c *Chat) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// CanSend reports whether input could be sent right now.
func (c *Chat) CanSend(input string) bool {
	return strings.TrimSpace(input) != "" && !c.Pending()
}

// BeginSend validates input, appends it as a user turn and marks the
// session pending.
func (c *Chat) BeginSend(input string) (model.Turn, error) {
	if strings.TrimSpace(input) == "" {
		return model.Turn{}, ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return model.Turn{}, ErrBusy
	}
	c.pending = true

	turn := c.transcript.Append(model.RoleUser, input)
	c.logger.Info("CHAT_SEND", "turn_id", turn.ID, "chars", len(input))
	return turn, nil
}

// Ask performs the backend round trip and maps the outcome to the bot text.
// err is informational; the returned text is always displayable.
func (c *Chat) Ask(ctx context.Context, question string) (string, error) {
	resp, err := c.backend.Chat(ctx, question)
	reply := Reply(resp, err)
	if err != nil {
		c.logger.Warn("CHAT_FAILED", "error", err)
	}
	return reply, err
}

// Complete appends the bot turn and clears the pending flag.
func (c *Chat) Complete(reply string) model.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	turn := c.transcript.Append(model.RoleBot, reply)
	c.pending = false
	c.logger.Info("CHAT_REPLY", "turn_id", turn.ID, "chars", len(reply))
	return turn
}

// Send runs the whole contract synchronously and refreshes suggestions.
// The returned error is ErrEmptyInput, ErrBusy or the backend error; on a
// backend error the apology turn has still been appended.
func (c *Chat) Send(ctx context.Context, input string) (model.Turn, error) {
	if _, err := c.BeginSend(input); err != nil {
		return model.Turn{}, err
	}
	reply, askErr := c.Ask(ctx, input)
	turn := c.Complete(reply)
	c.RefreshSuggestions(ctx)
	return turn, askErr
}

// SuggestionRequest reserves a sequence number for the transcript as it is
// now and returns the history to compute from.
func (c *Chat) SuggestionRequest() (uint64, []string) {
	return c.suggestions.Next(), c.transcript.UserContents()
}

// RefreshSuggestions recomputes and applies suggestions synchronously.
func (c *Chat) RefreshSuggestions(ctx context.Context) []string {
	seq, history := c.SuggestionRequest()
	c.suggestions.Apply(c.suggestions.Compute(ctx, seq, history))
	return c.suggestions.Current()
}

// Reply maps a chat round trip to the text of the bot turn.
func Reply(resp *api.ChatResponse, err error) string {
	if err != nil {
		return ApologyNetwork
	}
	if resp == nil || resp.Response == nil || *resp.Response == "" {
		return ApologyMissing
	}
	return *resp.Response
}
