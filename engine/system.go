package engine

// System is a behavior run once per frame by the Scheduler. Systems may keep
// state in their own fields between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Gameplay marks systems that advance the game. The Scheduler skips them
// while paused; rendering and debug systems keep running.
type Gameplay interface {
	System
	Gameplay()
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
