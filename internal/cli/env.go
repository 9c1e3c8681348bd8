// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/config"
	"github.com/jeranaias/onboard-tui/internal/logging"
)

// Env is what a backend command runs with: the effective config, a
// client for the backend and a logger.
type Env struct {
	Config *config.Config
	Client *api.Client
	Logger *slog.Logger

	closer io.Closer
}

// NewEnv builds the command environment. --api overrides api.base_url and
// --verbose sends debug logs to stderr instead of the log file.
func NewEnv(args Args) *Env {
	cfg := config.Global().Clone()
	if args.API != "" {
		cfg.API.BaseURL = args.API
	}

	var (
		logger *slog.Logger
		closer io.Closer
	)
	if args.Verbose {
		logger = logging.New(stderr, slog.LevelDebug)
		closer = nopCloser{}
	} else {
		path, err := cfg.LogPath()
		if err == nil {
			logger, closer, _ = logging.Open(path, cfg.Log.Level)
		}
		if logger == nil {
			logger, closer = logging.Discard(), nopCloser{}
		}
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       time.Duration(cfg.API.TimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.API.UploadTimeoutSecs) * time.Second,
		Logger:        logger,
	})

	return &Env{Config: cfg, Client: client, Logger: logger, closer: closer}
}

// Close flushes the log file.
func (e *Env) Close() error {
	return e.closer.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// commandContext is cancelled on Ctrl+C so a slow request can be
// abandoned without killing the terminal state.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
