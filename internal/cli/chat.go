// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-mode chat.
//
// Command: chat
// Short:   Chat with the assistant without the TUI
//
// Slash commands:
//   /help        Show commands
//   /suggest     Show suggested questions
//   /ask N       Send suggestion N
//   /say [N]     Read bot message N aloud (default: the last one); again to stop
//   /stop        Stop reading aloud
//   /history     Show the conversation
//   /quit        Exit (also: exit, quit, Ctrl+D)
//
// Input history lives in memory for the session and supports arrow keys.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/onboard-tui/internal/model"
	"github.com/jeranaias/onboard-tui/internal/session"
	"github.com/jeranaias/onboard-tui/internal/tts"
)

const chatPrompt = "bạn> "

// lineReader is the part of liner the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// chatREPL is one interactive chat session.
type chatREPL struct {
	chat   *session.Chat
	speech *tts.Controller // nil when speech is off
	in     lineReader
	logger *slog.Logger
	quiet  bool
}

// HandleChat handles the "chat" command.
func HandleChat(args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	env := NewEnv(args)
	defer env.Close()

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	repl := &chatREPL{
		chat:   session.New(env.Client, env.Client, env.Logger),
		speech: newSpeech(env),
		in:     line,
		logger: env.Logger,
		quiet:  args.Quiet,
	}
	defer repl.close()

	return repl.run(context.Background())
}

// newSpeech returns a controller when speech is enabled and the player
// can be found.
func newSpeech(env *Env) *tts.Controller {
	if !env.Config.TTS.Enabled {
		return nil
	}
	player := tts.NewExecPlayer(env.Config.TTS.Player, env.Config.TTS.PlayerArgs)
	if !player.Available() {
		env.Logger.Warn("TTS_PLAYER_MISSING", "player", env.Config.TTS.Player)
		return nil
	}
	return tts.NewController(env.Client, player, env.Config.TTS.TempDir, env.Logger)
}

func (r *chatREPL) close() {
	if r.speech != nil {
		r.speech.Close()
	}
	r.in.Close()
}

// run is the REPL loop. It returns nil on every normal way out.
func (r *chatREPL) run(ctx context.Context) error {
	if !r.quiet {
		snapshot := r.chat.Transcript().Snapshot()
		if len(snapshot) > 0 {
			fmt.Fprintln(stdout, renderMarkdown(snapshot[0].Content))
		}
		fmt.Fprintln(stdout, DimStyle.Render("Gõ /help để xem lệnh, /quit để thoát."))
		printSuggestions(r.chat.Suggestions().Current())
	}

	for {
		input, err := r.in.Prompt(chatPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(stdout)
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.in.AppendHistory(input)

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		if strings.HasPrefix(input, "/") {
			if !r.command(ctx, input) {
				return nil
			}
			continue
		}

		r.send(ctx, input)
	}
}

// send runs one question and prints the answer and new suggestions.
func (r *chatREPL) send(ctx context.Context, input string) {
	fmt.Fprintln(stdout, DimStyle.Render(session.LoadingText))

	reqCtx, cancel := commandContext()
	defer cancel()
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-reqCtx.Done():
		}
	}()

	turn, err := r.chat.Send(reqCtx, input)
	if errors.Is(err, session.ErrEmptyInput) || errors.Is(err, session.ErrBusy) {
		return
	}
	r.printBot(turn)
	printSuggestions(r.chat.Suggestions().Current())
}

func (r *chatREPL) printBot(turn model.Turn) {
	n := r.botNumber(turn.ID)
	header := fmt.Sprintf("%s #%d  %s", turn.Role.DisplayName(), n, turn.Clock())
	fmt.Fprintln(stdout, SectionStyle.Render(header))
	fmt.Fprintln(stdout, renderMarkdown(turn.Content))
}

// botNumber is the 1-based position of a bot turn, as /say takes it.
func (r *chatREPL) botNumber(id int64) int {
	for i, bid := range r.chat.Transcript().BotIDs() {
		if bid == id {
			return i + 1
		}
	}
	return 0
}

// command runs a slash command and reports whether the loop continues.
func (r *chatREPL) command(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	name, rest := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return false

	case "/help", "/?":
		printChatHelp()

	case "/suggest", "/s":
		current := r.chat.Suggestions().Current()
		if len(current) == 0 {
			fmt.Fprintln(stdout, DimStyle.Render("Không có gợi ý."))
		}
		printSuggestions(current)

	case "/ask", "/a":
		n, err := chipNumber(rest)
		if err != nil {
			r.fail(err)
			break
		}
		text, ok := r.chat.Suggestions().Chip(n - 1)
		if !ok {
			r.fail(fmt.Errorf("không có gợi ý số %d", n))
			break
		}
		fmt.Fprintln(stdout, chatPrompt+text)
		r.send(ctx, text)

	case "/say":
		r.say(ctx, rest)

	case "/stop":
		if r.speech != nil {
			r.speech.Stop()
		}

	case "/history", "/h":
		for _, t := range r.chat.Transcript().Snapshot() {
			fmt.Fprintf(stdout, "%s %s\n", SectionStyle.Render(t.Role.DisplayName()+":"), t.Content)
		}

	default:
		r.fail(fmt.Errorf("lệnh không hợp lệ: %s (gõ /help)", name))
	}
	return true
}

func chipNumber(rest []string) (int, error) {
	if len(rest) == 0 {
		return 0, errors.New("cú pháp: /ask N")
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("số gợi ý không hợp lệ: %s", rest[0])
	}
	return n, nil
}

// say toggles speech for a bot turn. Playback runs in the background and
// releases the controller when it ends.
func (r *chatREPL) say(ctx context.Context, rest []string) {
	if r.speech == nil {
		r.fail(errors.New("đọc văn bản đang tắt hoặc không tìm thấy trình phát"))
		return
	}

	ids := r.chat.Transcript().BotIDs()
	idx := len(ids)
	if len(rest) > 0 {
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 1 || n > len(ids) {
			r.fail(fmt.Errorf("không có tin nhắn số %s", rest[0]))
			return
		}
		idx = n
	}
	turn, ok := r.chat.Transcript().Get(ids[idx-1])
	if !ok {
		return
	}

	started, playing, err := r.speech.Toggle(ctx, turn.ID, turn.Content)
	switch {
	case err != nil:
		r.logger.Warn("TTS_FAILED", "turn_id", turn.ID, "error", err)
		r.fail(fmt.Errorf("không thể đọc tin nhắn: %w", err))
	case !playing:
		fmt.Fprintln(stdout, DimStyle.Render("■ Đã dừng"))
	default:
		fmt.Fprintln(stdout, DimStyle.Render(fmt.Sprintf("▶ Đang đọc tin nhắn #%d", idx)))
		go func() {
			<-started.Done
			r.speech.Finish(started.Gen)
		}()
	}
}

func (r *chatREPL) fail(err error) {
	fmt.Fprintf(stderr, "%s %v\n", ErrorStyle.Render("[Lỗi]"), err)
}

func printChatHelp() {
	lines := [][2]string{
		{"/help", "Hiện danh sách lệnh"},
		{"/suggest", "Hiện câu hỏi gợi ý"},
		{"/ask N", "Gửi gợi ý số N"},
		{"/say [N]", "Đọc tin nhắn số N (mặc định: tin mới nhất), gõ lại để dừng"},
		{"/stop", "Dừng đọc"},
		{"/history", "Hiện cuộc trò chuyện"},
		{"/quit", "Thoát"},
	}
	for _, l := range lines {
		fmt.Fprintln(stdout, RenderField(l[0], l[1]))
	}
}
