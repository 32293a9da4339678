// Package sound plays short synthesized cues for session events.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/blockfall/tetris"
)

// SampleRate is the rate every cue is generated at.
const SampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

var (
	lockNotes     = []note{{220, 60 * time.Millisecond}}
	holdNotes     = []note{{440, 40 * time.Millisecond}, {330, 40 * time.Millisecond}}
	lineNotes     = []note{{523.25, 70 * time.Millisecond}, {659.25, 70 * time.Millisecond}, {783.99, 70 * time.Millisecond}, {1046.5, 70 * time.Millisecond}}
	gameOverNotes = []note{{392, 150 * time.Millisecond}, {329.63, 150 * time.Millisecond}, {261.63, 150 * time.Millisecond}, {196, 300 * time.Millisecond}}
)

// notesFor returns the melody for an event, or nil when the event is silent.
// Line clears play one rising note per cleared row.
func notesFor(e tetris.Event) []note {
	switch e.Type {
	case tetris.EventLocked:
		return lockNotes
	case tetris.EventHeld:
		return holdNotes
	case tetris.EventLinesCleared:
		n := min(max(e.Lines, 1), len(lineNotes))
		return lineNotes[:n]
	case tetris.EventGameOver:
		return gameOverNotes
	default:
		return nil
	}
}

// Cue builds the streamer for e at the given linear volume. It returns nil
// for events without a sound.
func Cue(e tetris.Event, volume float64) beep.Streamer {
	notes := notesFor(e)
	if len(notes) == 0 {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(SampleRate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(SampleRate.N(n.duration), tone))
	}

	return withVolume(beep.Seq(parts...), volume)
}

// Duration returns how long the cue for e plays.
func Duration(e tetris.Event) time.Duration {
	var total time.Duration
	for _, n := range notesFor(e) {
		total += n.duration
	}
	return total
}

func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// Player mixes cues into the speaker. Until Init succeeds cues are still
// queued on the mixer, which lets the player run headless.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewPlayer returns a player at the given linear volume.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the audio device and starts streaming the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// SetMuted silences or restores subsequent cues.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Pending returns the number of cues still on the mixer.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// OnEvent queues the cue for e.
func (p *Player) OnEvent(e tetris.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted {
		return
	}

	cue := Cue(e, p.volume)
	if cue == nil {
		return
	}

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(cue)
}
