// Package playback models the ordered audio feedback that follows a correct
// answer. A Player abstracts the actual audio sink, a Channel serializes
// playback so a new clip silences the previous one, and a Sequence runs a
// list of clips back to back with a minimum overall duration.
package playback

import (
	"context"
	"sync"
	"time"
)

// Player plays a single audio source and blocks until it finishes. A Player
// must treat a source that produces no audio as finished immediately rather
// than returning an error, so callers can sequence clips without special
// cases. Play returns ctx.Err() when the context is canceled mid-clip.
type Player interface {
	Play(ctx context.Context, src string) error
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(ctx context.Context, src string) error

func (f PlayerFunc) Play(ctx context.Context, src string) error { return f(ctx, src) }

// Immediate is a Player that finishes every clip instantly. The HTTP shell
// uses it because the browser, not the server, plays the audio.
type Immediate struct{}

func (Immediate) Play(ctx context.Context, src string) error { return ctx.Err() }

// Channel serializes playback onto one Player. Starting a new clip cancels
// whatever the channel was playing, so at most one clip is audible at a time.
type Channel struct {
	player Player

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewChannel returns a Channel backed by player.
func NewChannel(player Player) *Channel {
	return &Channel{player: player}
}

// Play cancels any in-flight clip, then plays src and blocks until it ends.
func (c *Channel) Play(ctx context.Context, src string) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	return c.player.Play(ctx, src)
}

// Stop cancels the in-flight clip, if any.
func (c *Channel) Stop() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
}

// Sequence plays feedback clips in order on a Channel and then holds until at
// least MinDelay has elapsed since the sequence started, so short clips do
// not make the game feel abrupt.
type Sequence struct {
	Channel  *Channel
	MinDelay time.Duration

	// now and sleep are swapped out in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSequence returns a Sequence playing on ch with the given floor.
func NewSequence(ch *Channel, minDelay time.Duration) *Sequence {
	return &Sequence{Channel: ch, MinDelay: minDelay}
}

// Run plays each source in order, then waits out the remainder of MinDelay.
// Playback errors other than context cancellation are treated as the clip
// having ended, so a missing audio file never stalls the game. Run returns
// ctx.Err() as soon as the context is canceled.
func (s *Sequence) Run(ctx context.Context, sources ...string) error {
	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	sleepFn := s.sleep
	if sleepFn == nil {
		sleepFn = sleepCtx
	}

	start := nowFn()
	for _, src := range sources {
		if src == "" {
			continue
		}
		if err := s.Channel.Play(ctx, src); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Treat the clip as ended and keep going.
		}
	}

	if remaining := s.MinDelay - nowFn().Sub(start); remaining > 0 {
		return sleepFn(ctx, remaining)
	}
	return ctx.Err()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
