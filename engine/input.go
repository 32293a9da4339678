package engine

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/tetris"
)

// InputSource produces the commands for one frame. Frontends implement it on
// top of their keyboard polling.
type InputSource interface {
	Poll() []tetris.Command
}

// InputFunc adapts a function to the InputSource interface.
type InputFunc func() []tetris.Command

func (f InputFunc) Poll() []tetris.Command { return f() }

// ScriptedInput replays a fixed list of per-frame batches, then returns nothing.
type ScriptedInput struct {
	frames [][]tetris.Command
	next   int
}

// NewScriptedInput returns a source yielding one batch per Poll.
func NewScriptedInput(frames ...[]tetris.Command) *ScriptedInput {
	return &ScriptedInput{frames: frames}
}

func (s *ScriptedInput) Poll() []tetris.Command {
	if s.next >= len(s.frames) {
		return nil
	}
	batch := s.frames[s.next]
	s.next++
	return batch
}

// Done reports whether every batch has been consumed.
func (s *ScriptedInput) Done() bool {
	return s.next >= len(s.frames)
}

// RandomInput is a seeded bot issuing at most one random command per frame.
type RandomInput struct {
	rng  *rand.Rand
	rate float64
}

// NewRandomInput returns a bot that acts on a fraction rate of the frames.
func NewRandomInput(seed uint64, rate float64) *RandomInput {
	return &RandomInput{
		rng:  rand.New(rand.NewPCG(seed, seed+1)),
		rate: rate,
	}
}

func (r *RandomInput) Poll() []tetris.Command {
	if r.rng.Float64() >= r.rate {
		return nil
	}
	return []tetris.Command{tetris.Commands[r.rng.IntN(len(tetris.Commands))]}
}

// ChannelInput collects commands sent from other goroutines, such as a
// terminal event loop, and hands them to the scheduler goroutine.
type ChannelInput struct {
	ch chan tetris.Command
}

// NewChannelInput returns a source buffering up to size pending commands.
func NewChannelInput(size int) *ChannelInput {
	return &ChannelInput{ch: make(chan tetris.Command, size)}
}

// Send queues cmd without blocking. It reports false when the buffer is full.
func (c *ChannelInput) Send(cmd tetris.Command) bool {
	select {
	case c.ch <- cmd:
		return true
	default:
		return false
	}
}

func (c *ChannelInput) Poll() []tetris.Command {
	var batch []tetris.Command
	for {
		select {
		case cmd := <-c.ch:
			batch = append(batch, cmd)
		default:
			return batch
		}
	}
}
