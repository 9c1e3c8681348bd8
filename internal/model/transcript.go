// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"
)

// Transcript is the ordered, append-only record of a chat session.
// It is safe for concurrent use.
type Transcript struct {
	mu     sync.RWMutex
	turns  []Turn
	nextID int64

	// now is swapped in tests.
	now func() time.Time
}

// NewTranscript creates a transcript whose first turn is the given bot
// greeting. An empty greeting yields an empty transcript.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{
		turns: make([]Turn, 0, 16),
		now:   time.Now,
	}
	if greeting != "" {
		t.Append(RoleBot, greeting)
	}
	return t
}

// Append assigns the next id, stamps the current time and appends the turn.
// Ids come from a counter, never from the slice length, so they stay strictly
// increasing even when appends interleave.
func (t *Transcript) Append(role Role, content string) Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	turn := Turn{
		ID:        t.nextID,
		Role:      role,
		Content:   content,
		Timestamp: t.now(),
	}
	t.turns = append(t.turns, turn)
	return turn
}

// Snapshot returns a copy of the turns in creation order.
func (t *Transcript) Snapshot() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Get returns the turn with the given id.
func (t *Transcript) Get(id int64) (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	// Ids are sorted, but transcripts are short enough for a scan.
	for _, turn := range t.turns {
		if turn.ID == id {
			return turn, true
		}
	}
	return Turn{}, false
}

// UserContents returns the content of every user turn, oldest first.
func (t *Transcript) UserContents() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.turns)/2)
	for _, turn := range t.turns {
		if turn.Role == RoleUser {
			out = append(out, turn.Content)
		}
	}
	return out
}

// LastUser returns the most recent user turn.
func (t *Transcript) LastUser() (Turn, bool) {
	return t.lastOf(RoleUser)
}

// LastBot returns the most recent bot turn.
func (t *Transcript) LastBot() (Turn, bool) {
	return t.lastOf(RoleBot)
}

func (t *Transcript) lastOf(role Role) (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := len(t.turns) - 1; i >= 0; i-- {
		if t.turns[i].Role == role {
			return t.turns[i], true
		}
	}
	return Turn{}, false
}

// BotIDs returns the ids of all bot turns in order.
func (t *Transcript) BotIDs() []int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.turns))
	for _, turn := range t.turns {
		if turn.Role == RoleBot {
			ids = append(ids, turn.ID)
		}
	}
	return ids
}
