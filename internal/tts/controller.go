// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Sentinel errors.
var (
	// ErrNoAudio means the backend answered with an empty body.
	ErrNoAudio = errors.New("tts: backend returned no audio")
	// ErrSuperseded means another toggle replaced this ticket before it
	// started playing. Callers should drop it silently.
	ErrSuperseded = errors.New("tts: request superseded")
)

// Synthesizer turns text into audio bytes. *api.Client satisfies it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player starts playback of an audio file.
type Player interface {
	Play(path string) (Playback, error)
}

// Playback is one running playback.
type Playback interface {
	// Stop halts playback. It is safe to call after the playback ended.
	Stop() error
	// Done is closed when playback ends for any reason.
	Done() <-chan struct{}
}

// State is a snapshot of the controller.
type State struct {
	TurnID  int64
	Playing bool
	Loading bool
}

// Active reports whether turnID is loading or playing.
func (s State) Active(turnID int64) bool {
	return (s.Playing || s.Loading) && s.TurnID == turnID
}

// Ticket identifies one toggle-on request.
type Ticket struct {
	Gen    uint64
	TurnID int64
}

// Started describes a playback that began.
type Started struct {
	Gen    uint64
	TurnID int64
	Done   <-chan struct{}
}

type handle struct {
	gen      uint64
	turnID   int64
	path     string
	playback Playback
}

type pending struct {
	gen    uint64
	turnID int64
	cancel context.CancelFunc
}

// Controller owns the single audio slot.
type Controller struct {
	synth  Synthesizer
	player Player
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	gen     uint64
	active  *handle
	loading *pending
}

// NewController creates a controller. dir is where temp audio files go;
// empty means os.TempDir().
func NewController(synth Synthesizer, player Player, dir string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		synth:  synth,
		player: player,
		dir:    dir,
		logger: logger,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.active != nil:
		return State{TurnID: c.active.turnID, Playing: true}
	case c.loading != nil:
		return State{TurnID: c.loading.turnID, Loading: true}
	}
	return State{}
}

// Begin is the synchronous half of a toggle. If turnID is already loading
// or playing it is stopped and Begin returns false. Otherwise whatever is
// active is stopped and released, and a ticket for turnID is returned.
func (c *Controller) Begin(turnID int64) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	same := (c.active != nil && c.active.turnID == turnID) ||
		(c.loading != nil && c.loading.turnID == turnID)

	c.stopLocked()
	c.gen++

	if same {
		c.logger.Debug("TTS_STOP", "turn_id", turnID)
		return Ticket{}, false
	}

	c.loading = &pending{gen: c.gen, turnID: turnID}
	return Ticket{Gen: c.gen, TurnID: turnID}, true
}

// Start fetches audio for the ticket and starts playing it. If the ticket
// was superseded in the meantime nothing plays and ErrSuperseded is
// returned. Any other failure returns the controller to idle.
func (c *Controller) Start(ctx context.Context, t Ticket, text string) (Started, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.loading == nil || c.loading.gen != t.Gen {
		c.mu.Unlock()
		return Started{}, ErrSuperseded
	}
	c.loading.cancel = cancel
	c.mu.Unlock()

	audio, err := c.synth.Synthesize(ctx, text)
	if err == nil && len(audio) == 0 {
		err = ErrNoAudio
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading == nil || c.loading.gen != t.Gen {
		return Started{}, ErrSuperseded
	}
	c.loading = nil

	if err != nil {
		c.logger.Warn("TTS_FETCH_FAILED", "turn_id", t.TurnID, "error", err)
		return Started{}, fmt.Errorf("synthesize: %w", err)
	}

	path, err := c.writeTemp(audio)
	if err != nil {
		return Started{}, err
	}

	pb, err := c.player.Play(path)
	if err != nil {
		os.Remove(path)
		c.logger.Warn("TTS_PLAY_FAILED", "turn_id", t.TurnID, "error", err)
		return Started{}, fmt.Errorf("play: %w", err)
	}

	c.active = &handle{gen: t.Gen, turnID: t.TurnID, path: path, playback: pb}
	c.logger.Debug("TTS_START", "turn_id", t.TurnID, "gen", t.Gen, "bytes", len(audio))

	return Started{Gen: t.Gen, TurnID: t.TurnID, Done: pb.Done()}, nil
}

// Toggle runs Begin and, when it starts something, Start. It returns
// started=false when the toggle stopped playback.
func (c *Controller) Toggle(ctx context.Context, turnID int64, text string) (Started, bool, error) {
	t, starting := c.Begin(turnID)
	if !starting {
		return Started{}, false, nil
	}
	s, err := c.Start(ctx, t, text)
	if err != nil {
		return Started{}, false, err
	}
	return s, true, nil
}

// Finish handles the end of playback gen. Stale generations are ignored.
// It reports whether the controller went idle.
func (c *Controller) Finish(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil || c.active.gen != gen {
		return false
	}
	c.logger.Debug("TTS_END", "turn_id", c.active.turnID, "gen", gen)
	c.releaseLocked()
	return true
}

// Stop stops whatever is loading or playing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.gen++
}

// Close stops playback and removes any temp file. The controller stays
// usable.
func (c *Controller) Close() error {
	c.Stop()
	return nil
}

func (c *Controller) stopLocked() {
	if c.loading != nil {
		if c.loading.cancel != nil {
			c.loading.cancel()
		}
		c.loading = nil
	}
	c.releaseLocked()
}

// releaseLocked stops the active playback and deletes its file.
func (c *Controller) releaseLocked() {
	if c.active == nil {
		return
	}
	if err := c.active.playback.Stop(); err != nil {
		c.logger.Debug("TTS_STOP_ERROR", "error", err)
	}
	if err := os.Remove(c.active.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("TTS_RELEASE_FAILED", "path", c.active.path, "error", err)
	}
	c.active = nil
}

func (c *Controller) writeTemp(audio []byte) (string, error) {
	f, err := os.CreateTemp(c.dir, "onboard-tts-*.wav")
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return path, nil
}
