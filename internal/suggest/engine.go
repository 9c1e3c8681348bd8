// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jeranaias/onboard-tui/internal/api"
)

// Backend fetches raw suggestions for a history of user turns.
// *api.Client satisfies it.
type Backend interface {
	Suggestions(ctx context.Context, history []string) ([]api.SuggestionEntry, error)
}

// Result is the outcome of one computation.
type Result struct {
	Seq         uint64
	Suggestions []string
	// BackendErr is set when the backend call failed; Suggestions then
	// holds the local-only result.
	BackendErr error
}

// Engine owns the current suggestion set and the sequence discipline.
// It is safe for concurrent use.
type Engine struct {
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	current []string
}

// NewEngine creates an engine showing the bootstrap list. A nil backend
// means local rules only.
func NewEngine(backend Backend, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		backend: backend,
		logger:  logger,
		current: Bootstrap(),
	}
}

// Next reserves a sequence number. Call it at the moment the transcript
// changes, before handing the computation to a goroutine.
func (e *Engine) Next() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issued++
	return e.issued
}

// Compute runs the pipeline for userTurns under a reserved sequence number.
// It does not touch the current set.
func (e *Engine) Compute(ctx context.Context, seq uint64, userTurns []string) Result {
	res := Result{Seq: seq}
	if len(userTurns) == 0 {
		res.Suggestions = Bootstrap()
		return res
	}

	var entries []api.SuggestionEntry
	if e.backend != nil {
		got, err := e.backend.Suggestions(ctx, userTurns)
		if err != nil {
			// Failure is the same as an empty answer.
			res.BackendErr = err
			e.logger.Debug("SUGGEST_BACKEND_FAILED", "seq", seq, "error", err)
		} else {
			entries = got
		}
	}

	res.Suggestions = Build(userTurns, entries)
	return res
}

// Recompute reserves a sequence number and computes synchronously.
func (e *Engine) Recompute(ctx context.Context, userTurns []string) Result {
	return e.Compute(ctx, e.Next(), userTurns)
}

// Apply installs res unless a newer result was already applied. It reports
// whether the set changed hands.
func (e *Engine) Apply(res Result) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if res.Seq <= e.applied {
		e.logger.Debug("SUGGEST_STALE", "seq", res.Seq, "applied", e.applied)
		return false
	}
	e.applied = res.Seq
	e.current = append([]string(nil), res.Suggestions...)
	return true
}

// Current returns a copy of the suggestions on display.
func (e *Engine) Current() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.current...)
}

// Chip returns the i-th suggestion (0-based) as it would be sent.
func (e *Engine) Chip(i int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.current) {
		return "", false
	}
	return Clean(e.current[i]), true
}
