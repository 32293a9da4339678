package engine

import (
	"log/slog"

	"github.com/plus3/blockfall/tetris"
)

// InputSystem polls its source once per frame into the frame's input batch.
type InputSystem struct {
	Source InputSource
}

func (s *InputSystem) Gameplay() {}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	if s.Source == nil {
		return
	}
	frame.Input = append(frame.Input, s.Source.Poll()...)
}

// SessionSystem applies the frame's input batch in order and then advances
// the session clock by the frame delta.
type SessionSystem struct {
	// Applied counts commands the session accepted.
	Applied int64
	// Rejected counts commands the session refused.
	Rejected int64
}

func (s *SessionSystem) Gameplay() {}

func (s *SessionSystem) Execute(frame *UpdateFrame) {
	for _, cmd := range frame.Input {
		if frame.Session.Command(cmd) {
			s.Applied++
		} else {
			s.Rejected++
		}
	}
	frame.Session.Tick(frame.DeltaTime)
}

// OverlaySystem recomposes the canvas every frame.
type OverlaySystem struct {
	Canvas *Canvas
}

func (s *OverlaySystem) Execute(frame *UpdateFrame) {
	s.Canvas.Compose(frame.Session)
}

// EventListener receives session events in the order they happened.
type EventListener interface {
	OnEvent(e tetris.Event)
}

// EventListenerFunc adapts a function to the EventListener interface.
type EventListenerFunc func(e tetris.Event)

func (f EventListenerFunc) OnEvent(e tetris.Event) { f(e) }

// EventSystem drains session events and fans them out to its listeners.
type EventSystem struct {
	Listeners []EventListener
	Logger    *slog.Logger
}

func (s *EventSystem) Execute(frame *UpdateFrame) {
	for _, e := range frame.Session.DrainEvents() {
		if s.Logger != nil {
			s.Logger.Debug("session event", "type", e.Type.String(), "kind", e.Kind.String(), "lines", e.Lines)
		}
		for _, l := range s.Listeners {
			l.OnEvent(e)
		}
	}
}

// EventCounter tallies events by type.
type EventCounter struct {
	Counts map[tetris.EventType]int
}

// NewEventCounter returns an empty counter.
func NewEventCounter() *EventCounter {
	return &EventCounter{Counts: make(map[tetris.EventType]int)}
}

func (c *EventCounter) OnEvent(e tetris.Event) {
	c.Counts[e.Type]++
}
