// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands of
// onboard.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - ArgParser: Flag and positional parsing shared by the commands
//   - JSONResponse: The single JSON document printed in --json mode
//   - Env: Config, backend client and logger a command runs with
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdAsk:
//	    err = cli.HandleAsk(args)
//	// ... other commands
//	}
//	os.Exit(cli.GetExitCode(err))
//
// # Commands Overview
//
//   - ask: Single question, prints the answer and suggestions
//   - chat: Line-mode chat with slash commands and read-aloud
//   - roadmap, positions: Learning roadmaps
//   - extract: Document upload, extracted data and employee form export
//   - content: Welcome email, summary, training questions, checklist
//   - config: Show and edit ~/.onboard/config.toml
//
// All commands support the --json flag.
package cli
