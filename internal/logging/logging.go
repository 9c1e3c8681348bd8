// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the structured log sink for onboard.
//
// The TUI owns the terminal, so records go to a file rather than stderr.
// Messages are upper-case event names with key/value attributes:
//
//	logger.Info("CHAT_SEND", "turn_id", 3, "chars", 42)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps debug, info, warn and error to slog levels.
// Unknown names return an error and LevelInfo.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError+1)
}

// Open appends to the log file at path, creating it and its directory
// with owner-only permissions. The returned closer flushes the file.
func Open(path, level string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, lvl), f, nil
}

// Setup opens the log file and installs it as the slog default. On
// failure the default logger discards everything so the UI stays clean.
func Setup(path, level string) (*slog.Logger, io.Closer, error) {
	logger, closer, err := Open(path, level)
	if err != nil {
		logger = Discard()
		closer = nopCloser{}
	}
	slog.SetDefault(logger)
	return logger, closer, err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
