// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler.
//
// Command: ask QUESTION
// Short:   Ask the assistant one question
//
// Examples:
//   onboard ask "Giờ làm việc của công ty là gì?"
//   onboard ask --json "Tôi cần chuẩn bị gì cho ngày đầu tiên?"
//
// The answer is printed as rendered markdown, followed by the suggested
// follow-up questions.
package cli

import (
	"fmt"

	"github.com/jeranaias/onboard-tui/internal/session"
)

// HandleAsk handles the "ask" command.
func HandleAsk(args Args) error {
	if args.Query == "" {
		return ErrMissingArgument("question", `onboard ask "Chính sách nghỉ phép như thế nào?"`)
	}

	env := NewEnv(args)
	defer env.Close()

	ctx, cancel := commandContext()
	defer cancel()

	chat := session.New(env.Client, env.Client, env.Logger)
	turn, err := chat.Send(ctx, args.Query)
	if err != nil {
		return NewCommandError("ask", "chat", turn.Content, err)
	}
	suggestions := chat.Suggestions().Current()

	if args.JSON {
		return NewJSONResponse("ask", AskData{
			Question:    args.Query,
			Response:    turn.Content,
			Suggestions: suggestions,
		}).Print()
	}

	fmt.Fprintln(stdout, renderMarkdown(turn.Content))
	if !args.Quiet {
		printSuggestions(suggestions)
	}
	return nil
}

// printSuggestions lists chips numbered from 1, as /ask N expects.
func printSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, DimStyle.Render("Gợi ý:"))
	for i, s := range suggestions {
		fmt.Fprintf(stdout, "  %s %s\n", ChipStyle.Render(fmt.Sprintf("[%d]", i+1)), s)
	}
}
