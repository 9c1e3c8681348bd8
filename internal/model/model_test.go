// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestNewTranscript_SeedsGreeting(t *testing.T) {
	tr := NewTranscript(Greeting)

	turns := tr.Snapshot()
	require.Len(t, turns, 1)
	assert.Equal(t, int64(1), turns[0].ID)
	assert.Equal(t, RoleBot, turns[0].Role)
	assert.Equal(t, Greeting, turns[0].Content)

	_, ok := tr.LastUser()
	assert.False(t, ok)
}

func TestTranscript_IDsStrictlyIncrease(t *testing.T) {
	tr := NewTranscript(Greeting)

	prev := tr.Snapshot()[0].ID
	for i := 0; i < 50; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleBot
		}
		turn := tr.Append(role, "msg")
		for _, existing := range tr.Snapshot()[:tr.Len()-1] {
			assert.Greater(t, turn.ID, existing.ID)
		}
		assert.Greater(t, turn.ID, prev)
		prev = turn.ID
	}
}

func TestTranscript_AppendOnly(t *testing.T) {
	tr := NewTranscript(Greeting)
	tr.Append(RoleUser, "help")
	before := tr.Snapshot()

	tr.Append(RoleBot, "Đây là hướng dẫn")
	tr.Append(RoleUser, "cảm ơn")

	after := tr.Snapshot()
	require.Len(t, after, len(before)+2)
	assert.Equal(t, before, after[:len(before)])

	// Mutating a snapshot must not leak into the transcript.
	after[0].Content = "changed"
	assert.Equal(t, Greeting, tr.Snapshot()[0].Content)
}

func TestTranscript_ConcurrentAppendsUniqueIDs(t *testing.T) {
	tr := NewTranscript(Greeting)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				tr.Append(RoleUser, "x")
			}
		}()
	}
	wg.Wait()

	turns := tr.Snapshot()
	require.Len(t, turns, 1+20*25)
	for i := 1; i < len(turns); i++ {
		assert.Greater(t, turns[i].ID, turns[i-1].ID, "order must follow id order")
	}
}

func TestTranscript_Queries(t *testing.T) {
	tr := NewTranscript(Greeting)
	fixed := time.Date(2025, 3, 1, 9, 30, 15, 0, time.Local)
	tr.now = func() time.Time { return fixed }

	u1 := tr.Append(RoleUser, "lộ trình developer")
	b1 := tr.Append(RoleBot, "Tuần 1: ...")
	u2 := tr.Append(RoleUser, "email")

	assert.Equal(t, []string{"lộ trình developer", "email"}, tr.UserContents())

	last, ok := tr.LastUser()
	require.True(t, ok)
	assert.Equal(t, u2.ID, last.ID)

	bot, ok := tr.LastBot()
	require.True(t, ok)
	assert.Equal(t, b1.ID, bot.ID)

	assert.Equal(t, []int64{1, b1.ID}, tr.BotIDs())

	got, ok := tr.Get(u1.ID)
	require.True(t, ok)
	assert.Equal(t, "09:30:15", got.Clock())

	_, ok = tr.Get(999)
	assert.False(t, ok)
}

func TestTurn_Lines(t *testing.T) {
	turn := Turn{Content: "dòng 1\r\ndòng 2\ndòng 3"}
	assert.Equal(t, []string{"dòng 1", "dòng 2", "dòng 3"}, turn.Lines())
}

func TestRole_DisplayName(t *testing.T) {
	assert.Equal(t, "Bạn", RoleUser.DisplayName())
	assert.Equal(t, "Onboarding Bot", RoleBot.DisplayName())
	assert.Equal(t, "other", Role("other").DisplayName())
}
