// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tts

import (
	"fmt"
	"os/exec"
	"sync"
)

// DefaultPlayerCommand plays a file without a window and exits at the end.
const DefaultPlayerCommand = "ffplay"

// DefaultPlayerArgs are passed before the file path.
var DefaultPlayerArgs = []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}

// ExecPlayer plays audio by running an external command with the file path
// as its last argument.
type ExecPlayer struct {
	Command string
	Args    []string
}

// NewExecPlayer returns a player for command. An empty command selects
// ffplay with DefaultPlayerArgs; nil args with a custom command means none.
func NewExecPlayer(command string, args []string) *ExecPlayer {
	if command == "" {
		return &ExecPlayer{Command: DefaultPlayerCommand, Args: DefaultPlayerArgs}
	}
	return &ExecPlayer{Command: command, Args: args}
}

// Available reports whether the command can be found on PATH.
func (p *ExecPlayer) Available() bool {
	_, err := exec.LookPath(p.Command)
	return err == nil
}

// Play starts the command and returns immediately.
func (p *ExecPlayer) Play(path string) (Playback, error) {
	args := append(append([]string(nil), p.Args...), path)
	cmd := exec.Command(p.Command, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", p.Command, err)
	}

	pb := &execPlayback{cmd: cmd, done: make(chan struct{})}
	go func() {
		pb.err = cmd.Wait()
		close(pb.done)
	}()
	return pb, nil
}

type execPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
	once sync.Once
}

func (p *execPlayback) Done() <-chan struct{} {
	return p.done
}

// Stop kills the process and waits for it to be reaped.
func (p *execPlayback) Stop() error {
	var err error
	p.once.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		if killErr := p.cmd.Process.Kill(); killErr != nil {
			err = killErr
		}
		<-p.done
	})
	return err
}
