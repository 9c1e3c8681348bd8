// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for onboard.
//
// Configuration sources, lowest to highest precedence:
//   - Built-in defaults
//   - ~/.onboard/config.toml
//   - A .env file in the working directory (loaded into the environment)
//   - ONBOARD_* environment variables
//   - Command line flags (applied by the caller)
//
// # Environment Variables
//
//   - ONBOARD_API_BASE: backend base URL
//   - ONBOARD_LOG_LEVEL: debug, info, warn or error
//   - ONBOARD_TTS_PLAYER: audio player command
//   - ONBOARD_HOME: overrides the ~/.onboard directory
//
// # Usage
//
//	cfg := config.Global()
//	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.API.BaseURL})
//
// Watch re-reads the file when it changes so a running TUI can follow
// edits without a restart.
package config
