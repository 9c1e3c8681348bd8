// onboard - A terminal onboarding assistant for new employees.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/cli"
	"github.com/jeranaias/onboard-tui/internal/config"
	"github.com/jeranaias/onboard-tui/internal/logging"
	"github.com/jeranaias/onboard-tui/internal/tts"
	"github.com/jeranaias/onboard-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdAsk:
		err = cli.HandleAsk(args)
	case cli.CmdChat:
		err = cli.HandleChat(args)
	case cli.CmdRoadmap:
		err = cli.HandleRoadmap(args)
	case cli.CmdPositions:
		err = cli.HandlePositions(args)
	case cli.CmdExtract:
		err = cli.HandleExtract(args)
	case cli.CmdContent:
		err = cli.HandleContent(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	default:
		err = cli.HandleHelp(args)
	}

	if err != nil {
		cli.DisplayError(err, cmd.String(), args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI starts the TUI interface.
func runTUI(args cli.Args) error {
	if err := cli.RequiresTTY("run the TUI"); err != nil {
		return err
	}

	cfg := config.Global().Clone()
	if args.API != "" {
		cfg.API.BaseURL = args.API
	}

	tab := args.Tab
	if tab == "" {
		tab = cfg.UI.DefaultTab
	}
	if !validTab(tab) {
		return cli.NewValidationErrorWithExample("tab", tab,
			"must be one of "+strings.Join(config.Tabs, ", "), "onboard tui --tab roadmap")
	}

	logger, logCloser := tuiLogger(cfg, args.Verbose)
	defer logCloser.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       time.Duration(cfg.API.TimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.API.UploadTimeoutSecs) * time.Second,
		Logger:        logger,
	})

	var notices []string
	speech, notice := newSpeech(cfg, client, logger)
	if notice != "" {
		notices = append(notices, notice)
	}
	if speech != nil {
		defer speech.Close()
	}

	app := newApp(appOptions{
		Config:  cfg,
		Client:  client,
		Speech:  speech,
		Theme:   styles.NewTheme(),
		Logger:  logger,
		Tab:     tab,
		Notices: notices,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if path, err := config.ConfigPathTOML(); err == nil {
		w, err := config.Watch(ctx, path, config.DefaultWatchDebounce, func(next *config.Config, err error) {
			if next != nil && args.API != "" {
				next.API.BaseURL = args.API
			}
			p.Send(configReloadedMsg{Config: next, Err: err})
		})
		if err != nil {
			logger.Warn("CONFIG_WATCH_FAILED", "path", path, "error", err)
		} else {
			defer w.Close()
		}
	}

	logger.Info("TUI_START", "version", Version, "base_url", cfg.API.BaseURL, "tab", tab)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running onboard: %w", err)
	}
	logger.Info("TUI_EXIT")
	return nil
}

// tuiLogger logs to the log file; the TUI owns the terminal. With
// --verbose the level drops to debug.
func tuiLogger(cfg *config.Config, verbose bool) (*slog.Logger, io.Closer) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	path, err := cfg.LogPath()
	if err != nil {
		path = filepath.Join(os.TempDir(), "onboard.log")
	}
	logger, closer, _ := logging.Setup(path, level)
	return logger, closer
}

// newSpeech returns the read-aloud controller, or a notice explaining why
// there is none.
func newSpeech(cfg *config.Config, client *api.Client, logger *slog.Logger) (*tts.Controller, string) {
	if !cfg.TTS.Enabled {
		return nil, ""
	}
	player := tts.NewExecPlayer(cfg.TTS.Player, cfg.TTS.PlayerArgs)
	if !player.Available() {
		logger.Warn("TTS_PLAYER_MISSING", "player", cfg.TTS.Player)
		return nil, "Không tìm thấy trình phát âm thanh: " + cfg.TTS.Player
	}
	return tts.NewController(client, player, cfg.TTS.TempDir, logger), ""
}
