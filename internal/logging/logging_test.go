// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.err, err != nil, tt.in)
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("CHAT_SEND", "turn_id", 2)
	logger.Warn("TTS_PLAY_FAILED", "turn_id", 3)

	out := buf.String()
	assert.NotContains(t, out, "CHAT_SEND")
	assert.Contains(t, out, "TTS_PLAY_FAILED")
	assert.Contains(t, out, "turn_id=3")
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "onboard.log")

	logger, closer, err := Open(path, "debug")
	require.NoError(t, err)
	logger.Debug("API_REQUEST", "path", "/chat")
	require.NoError(t, closer.Close())

	logger, closer, err = Open(path, "info")
	require.NoError(t, err)
	logger.Info("CHAT_REPLY")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "API_REQUEST")
	assert.Contains(t, string(data), "CHAT_REPLY")
}

func TestOpen_BadLevel(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}

func TestSetup_FallsBackToDiscard(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	logger, closer, err := Setup(filepath.Join(blocker, "onboard.log"), "info")
	assert.Error(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
