package engine

import "github.com/plus3/blockfall/tetris"

type UpdateFrame struct {
	DeltaTime float64
	Session   *tetris.Session
	// Input is the command batch gathered for this frame.
	Input    []tetris.Command
	Commands *Commands
}

func newUpdateFrame(dt float64, session *tetris.Session) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Session:   session,
		Commands:  newCommands(),
	}
}
