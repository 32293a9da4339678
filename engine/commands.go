package engine

import "github.com/plus3/blockfall/tetris"

// Commands buffers session operations requested while systems run. They are
// applied at the end of the frame so every system of a frame observes the same
// session state.
type Commands struct {
	restart bool
	issued  []tetris.Command
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Issue queues a player command.
func (c *Commands) Issue(cmd tetris.Command) {
	c.issued = append(c.issued, cmd)
}

// Restart queues a session restart. It is applied before queued commands.
func (c *Commands) Restart() {
	c.restart = true
}

// Defer queues a function to run after the session operations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	n := len(c.issued) + len(c.defers)
	if c.restart {
		n++
	}
	return n
}

// Flush applies all queued operations to session, resetting the buffer state
func (c *Commands) Flush(session *tetris.Session) {
	if c.restart {
		session.Restart()
	}

	for _, cmd := range c.issued {
		session.Command(cmd)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.restart = false
	c.issued = c.issued[:0]
	c.defers = c.defers[:0]
}
