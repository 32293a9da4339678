package tetris

import "math"

// Delays are the timing thresholds, in seconds, that drive a piece.
type Delays struct {
	// FreeStep is the interval between automatic gravity steps.
	FreeStep float64
	// ControlledStep is the minimum interval between two controlled moves
	// (left, right, soft drop).
	ControlledStep float64
	// Lock is how long a piece may rest on the stack before it locks.
	Lock float64
}

// rotationMatrix is the 90 degree turn (cos, sin, -sin, cos). Scaled by +1 it
// turns clockwise, by -1 counter-clockwise.
var rotationMatrix = [4]float64{0, 1, -1, 0}

// Piece is the falling tetromino. Its absolute cells are Position plus each
// relative cell; while the piece is active they are always valid on the board.
type Piece struct {
	board   *Board
	catalog *Catalog
	delays  Delays

	kind     Kind
	position Cell
	cells    [4]Cell
	rotation int

	stepTimer    float64
	controlTimer float64
	lockTimer    float64
}

// PieceState is a read-only snapshot of a piece.
type PieceState struct {
	Kind     Kind
	Tile     TileID
	Position Cell
	Cells    [4]Cell
	Rotation int

	// NextStep is the time left until the next gravity step.
	NextStep float64
	// SinceControl is the time since the last controlled move.
	SinceControl float64
	// Grounded is the time accumulated toward the lock delay.
	Grounded float64
}

// NewPiece creates an inactive piece bound to board.
func NewPiece(board *Board, catalog *Catalog, delays Delays) *Piece {
	return &Piece{
		board:   board,
		catalog: catalog,
		delays:  delays,
	}
}

// Spawn places a fresh piece of kind at anchor and resets its timers, so the
// first controlled move waits out the controlled-step delay. It returns false
// when the spawn cells are blocked or out of bounds.
func (p *Piece) Spawn(kind Kind, anchor Cell) bool {
	p.kind = kind
	p.position = anchor
	p.rotation = 0
	p.cells = p.catalog.Cells(kind)

	p.stepTimer = p.delays.FreeStep
	p.controlTimer = 0
	p.lockTimer = 0

	return p.board.IsValid(p.Absolute())
}

func (p *Piece) Kind() Kind { return p.kind }
func (p *Piece) Position() Cell { return p.position }
func (p *Piece) Cells() [4]Cell { return p.cells }
func (p *Piece) Rotation() int { return p.rotation }
func (p *Piece) Tile() TileID { return p.catalog.Tile(p.kind) }
func (p *Piece) Delays() Delays { return p.delays }
func (p *Piece) LockTime() float64 { return p.lockTimer }

// State returns a snapshot of the piece.
func (p *Piece) State() PieceState {
	return PieceState{
		Kind:         p.kind,
		Tile:         p.Tile(),
		Position:     p.position,
		Cells:        p.cells,
		Rotation:     p.rotation,
		NextStep:     p.stepTimer,
		SinceControl: p.controlTimer,
		Grounded:     p.lockTimer,
	}
}

// Absolute returns the board cells covered by the piece.
func (p *Piece) Absolute() [4]Cell {
	return p.at(p.position)
}

func (p *Piece) at(position Cell) [4]Cell {
	var out [4]Cell
	for i, c := range p.cells {
		out[i] = c.Add(position)
	}
	return out
}

// TryMove translates the piece by delta if the destination is valid. A
// successful move restarts the lock delay.
func (p *Piece) TryMove(delta Cell) bool {
	target := p.position.Add(delta)
	if !p.board.IsValid(p.at(target)) {
		return false
	}

	p.position = target
	p.lockTimer = 0
	return true
}

// Grounded reports whether the piece cannot move down.
func (p *Piece) Grounded() bool {
	return !p.board.IsValid(p.at(p.position.Add(Down)))
}

// Advance accumulates elapsed seconds into the piece timers. Lock time only
// accumulates while the piece is grounded.
func (p *Piece) Advance(elapsed float64) {
	p.controlTimer += elapsed
	p.stepTimer -= elapsed
	if p.Grounded() {
		p.lockTimer += elapsed
	}
}

// StepDue reports whether the gravity timer has run out.
func (p *Piece) StepDue() bool {
	return p.stepTimer <= 0
}

// Step applies one gravity step and restarts the step timer. It returns true
// when the piece could not move and has been grounded for the lock delay.
func (p *Piece) Step() bool {
	p.stepTimer = p.delays.FreeStep

	if p.TryMove(Down) {
		return false
	}
	return p.lockTimer >= p.delays.Lock
}

// Controlled applies a player translation subject to the controlled-step
// rate limit. ready is false when the move was throttled; moved reports
// whether the translation succeeded.
func (p *Piece) Controlled(delta Cell) (ready, moved bool) {
	if p.controlTimer < p.delays.ControlledStep {
		return false, false
	}
	p.controlTimer = 0
	return true, p.TryMove(delta)
}

// HardDrop moves the piece down until it rests and returns the distance.
func (p *Piece) HardDrop() int {
	rows := 0
	for p.TryMove(Down) {
		rows++
	}
	return rows
}

// Rotate turns the piece a quarter turn in direction (+1 clockwise, -1
// counter-clockwise), trying each wall kick for the new rotation in order.
// If none fits the piece is restored exactly and false is returned.
func (p *Piece) Rotate(direction int) bool {
	if direction == 0 {
		return false
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}

	originalRotation := p.rotation
	originalCells := p.cells

	p.rotation = wrap(p.rotation+direction, 4)
	p.applyRotationMatrix(direction)

	for _, kick := range p.catalog.Kicks(p.kind, p.rotation, direction) {
		if p.TryMove(kick) {
			return true
		}
	}

	p.rotation = originalRotation
	p.cells = originalCells
	return false
}

func (p *Piece) applyRotationMatrix(direction int) {
	for i, c := range p.cells {
		p.cells[i] = rotateCell(c, direction, p.kind.halfCellPivot())
	}
}

// rotateCell turns a relative offset by a quarter turn. Shapes pivoting on a
// cell corner are shifted half a cell first and rounded up; the rest round to
// nearest.
func rotateCell(c Cell, direction int, halfCellPivot bool) Cell {
	d := float64(direction)
	x, y := float64(c.X), float64(c.Y)

	if halfCellPivot {
		x -= 0.5
		y -= 0.5
		return Cell{
			X: int(math.Ceil(x*rotationMatrix[0]*d + y*rotationMatrix[1]*d)),
			Y: int(math.Ceil(x*rotationMatrix[2]*d + y*rotationMatrix[3]*d)),
		}
	}

	return Cell{
		X: int(math.Round(x*rotationMatrix[0]*d + y*rotationMatrix[1]*d)),
		Y: int(math.Round(x*rotationMatrix[2]*d + y*rotationMatrix[3]*d)),
	}
}
