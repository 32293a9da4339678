// Package debugui provides Dear ImGui inspector windows for a running session.
// Windows are drawn from deferred frame commands, after the session has been
// updated for the frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// ImguiItem holds a free-form Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Frontends read it to avoid sending keys typed into widgets to the
// game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Window is an inspector drawn once per frame against the session.
type Window interface {
	Render(session *tetris.Session)
}

// actionQueue is implemented by windows whose widgets request session
// changes. Requests made while rendering are applied on the next frame.
type actionQueue interface {
	queue() *Actions
}

// ImguiSystem updates the input capture state and defers every window and
// item render to the end of the frame.
type ImguiSystem struct {
	Windows    []Window
	Items      []ImguiItem
	InputState ImguiInputState
	// Hidden skips rendering. Queued actions are still applied.
	Hidden bool
}

// Add appends windows to the system.
func (i *ImguiSystem) Add(windows ...Window) {
	i.Windows = append(i.Windows, windows...)
}

// Toggle flips Hidden.
func (i *ImguiSystem) Toggle() {
	i.Hidden = !i.Hidden
}

// Execute applies queued widget actions and queues all renders.
func (i *ImguiSystem) Execute(frame *engine.UpdateFrame) {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, w := range i.Windows {
		if q, ok := w.(actionQueue); ok {
			q.queue().Apply(frame)
		}
	}

	if i.Hidden {
		return
	}

	session := frame.Session
	for _, w := range i.Windows {
		frame.Commands.Defer(func() { w.Render(session) })
	}
	for _, item := range i.Items {
		frame.Commands.Defer(item.Render)
	}
}

// Actions collects session changes requested from widgets.
type Actions struct {
	restart  bool
	commands []tetris.Command
	edits    []func(*tetris.Session)
}

func (a *Actions) queue() *Actions { return a }

// Issue queues a player command.
func (a *Actions) Issue(cmd tetris.Command) {
	a.commands = append(a.commands, cmd)
}

// Restart queues a session restart.
func (a *Actions) Restart() {
	a.restart = true
}

// Edit queues a direct change to the session, such as a board edit.
func (a *Actions) Edit(fn func(*tetris.Session)) {
	a.edits = append(a.edits, fn)
}

// Pending returns the number of queued actions.
func (a *Actions) Pending() int {
	n := len(a.commands) + len(a.edits)
	if a.restart {
		n++
	}
	return n
}

// Apply moves the queued actions onto the frame's command buffer and empties
// the queue. Edits run after the frame's commands.
func (a *Actions) Apply(frame *engine.UpdateFrame) {
	if a.restart {
		frame.Commands.Restart()
	}
	for _, cmd := range a.commands {
		frame.Commands.Issue(cmd)
	}
	session := frame.Session
	for _, fn := range a.edits {
		frame.Commands.Defer(func() { fn(session) })
	}

	a.restart = false
	a.commands = a.commands[:0]
	a.edits = a.edits[:0]
}
