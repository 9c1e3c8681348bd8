// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Print one value
//   set <key> <value>   Set a value and save ~/.onboard/config.toml
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   onboard config
//   onboard config get api.base_url
//   onboard config set api.base_url http://10.0.0.5:5001
//   onboard config set tts.player_args "-nodisp -autoexit"
//   onboard config set ui.default_tab roadmap
//
// A running TUI picks up saved changes without a restart.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/onboard-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show", "list":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "reset":
		return configReset(args)
	case "path":
		return configPath(args)
	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"must be show, get, set, reset or path", "onboard config set api.base_url http://127.0.0.1:5001")
	}
}

func configShow(args Args) error {
	cfg := config.Global()
	path, _ := config.ConfigPathTOML()

	values := make(map[string]string)
	for _, key := range config.Keys() {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		values[key] = v
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path, Values: values}).Print()
	}

	if !args.Quiet {
		fmt.Fprintln(stdout, TitleStyle.Render("onboard configuration"))
		fmt.Fprintln(stdout, DimStyle.Render(path))
		fmt.Fprintln(stdout, RenderSeparator())
	}
	for _, key := range config.Keys() {
		fmt.Fprintln(stdout, RenderField(key, values[key]))
	}
	return nil
}

func configGet(args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "onboard config get api.base_url")
	}
	v, err := config.Global().Get(args.ConfigKey)
	if err != nil {
		return &NotFoundError{Resource: "config key", ID: args.ConfigKey}
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Values: map[string]string{args.ConfigKey: v}}).Print()
	}
	fmt.Fprintln(stdout, v)
	return nil
}

// configSet edits the file on disk rather than the effective config, so
// environment overrides are not written back.
func configSet(args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "onboard config set api.base_url http://127.0.0.1:5001")
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return err
		}
		cfg.SetDefaults()
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewCommandError("config", "set", args.ConfigKey, err)
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path, Values: map[string]string{args.ConfigKey: args.ConfigVal}}).Print()
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s %s = %s\n", SuccessStyle.Render("[OK]"), args.ConfigKey, args.ConfigVal)
	}
	return nil
}

func configReset(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	cfg := config.Default()
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path}).Print()
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s configuration reset: %s\n", SuccessStyle.Render("[OK]"), path)
	}
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path}).Print()
	}
	fmt.Fprintln(stdout, path)
	return nil
}
