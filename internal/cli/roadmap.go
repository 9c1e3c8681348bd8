// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// roadmap.go - Learning roadmap commands.
//
// Commands:
//   roadmap --position P [--level fresher|junior|senior]
//   positions
//
// Examples:
//   onboard roadmap --position developer
//   onboard roadmap designer --level senior --json
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/onboard-tui/internal/ui/roadmap"
)

const defaultLevel = "fresher"

// HandleRoadmap handles the "roadmap" command.
func HandleRoadmap(args Args) error {
	position := strings.TrimSpace(args.Option("position", ""))
	if position == "" {
		return ErrMissingArgument("position", "onboard roadmap --position developer --level junior")
	}
	level := strings.ToLower(args.Option("level", defaultLevel))
	if !validLevel(level) {
		return NewValidationErrorWithExample("level", level,
			"must be one of "+levelList(), "onboard roadmap --position developer --level junior")
	}

	env := NewEnv(args)
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()

	env.Logger.Info("ROADMAP_GENERATE", "position", position, "level", level)
	resp, err := env.Client.GenerateRoadmap(ctx, position, level)
	if err != nil {
		return NewCommandError("roadmap", "generate", roadmap.ErrorText, err)
	}
	text := roadmap.Text(resp, nil)

	if args.JSON {
		return NewJSONResponse("roadmap", RoadmapData{
			Position: position,
			Level:    level,
			Roadmap:  text,
		}).Print()
	}

	if !args.Quiet {
		fmt.Fprintln(stdout, TitleStyle.Render(fmt.Sprintf("Lộ trình: %s · %s", position, roadmap.LevelLabel(level))))
	}
	fmt.Fprintln(stdout, renderMarkdown(text))
	return nil
}

func validLevel(level string) bool {
	for _, l := range roadmap.Levels {
		if l.Value == level {
			return true
		}
	}
	return false
}

func levelList() string {
	names := make([]string, len(roadmap.Levels))
	for i, l := range roadmap.Levels {
		names[i] = l.Value
	}
	return strings.Join(names, ", ")
}

// HandlePositions handles the "positions" command. A failed or empty
// answer falls back to the built-in list, as the roadmap panel does.
func HandlePositions(args Args) error {
	env := NewEnv(args)
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()

	positions, err := env.Client.Positions(ctx)
	fallback := err != nil || len(positions) == 0
	if fallback {
		env.Logger.Warn("ROADMAP_POSITIONS_FALLBACK", "error", err)
		positions = roadmap.FallbackPositions
	}

	if args.JSON {
		return NewJSONResponse("positions", PositionsData{Positions: positions, Fallback: fallback}).Print()
	}

	for _, p := range positions {
		fmt.Fprintln(stdout, p)
	}
	if fallback && !args.Quiet {
		fmt.Fprintln(stderr, WarningStyle.Render("Không tải được danh sách vị trí, dùng danh sách mặc định."))
	}
	return nil
}
