package tetris

import "fmt"

// Command is a discrete player action.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	Hold
)

var commandNames = []string{"MoveLeft", "MoveRight", "SoftDrop", "HardDrop", "RotateCW", "RotateCCW", "Hold"}

// Commands lists every command.
var Commands = []Command{MoveLeft, MoveRight, SoftDrop, HardDrop, RotateCW, RotateCCW, Hold}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// EventType classifies session events.
type EventType uint8

const (
	EventSpawned EventType = iota
	EventLocked
	EventLinesCleared
	EventHeld
	EventGameOver
	EventRestarted
)

var eventNames = []string{"Spawned", "Locked", "LinesCleared", "Held", "GameOver", "Restarted"}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("EventType(%d)", uint8(e))
}

// Event records something that happened during a tick or command. Kind is
// the piece involved; Lines is set for EventLinesCleared.
type Event struct {
	Type  EventType
	Kind  Kind
	Lines int
}
