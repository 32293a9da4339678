package tetris

import (
	"fmt"
	"log/slog"
)

// Stats counts what happened during a session. They are reset by Restart.
type Stats struct {
	Spawned int
	Locked  int
	Lines   int
	Holds   int
}

// Session owns the board, the active piece and the hold slot, and runs the
// spawn, play, lock, clear and respawn cycle. It is driven by Tick and
// Command from a single goroutine and is not safe for concurrent use.
type Session struct {
	cfg    Config
	logger *slog.Logger

	board *Board
	piece *Piece

	held         Kind
	hasHeld      bool
	heldThisTurn bool

	gameOver bool
	events   []Event
	stats    Stats
}

// NewSession validates cfg, builds the board and spawns the first piece.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	board, err := NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Session{
		cfg:    cfg,
		logger: logger.With("component", "session"),
		board:  board,
		piece:  NewPiece(board, cfg.Catalog, cfg.Delays()),
	}
	s.spawn(cfg.Randomizer.Next())

	return s, nil
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config {
	return s.cfg
}

// Tick advances the piece timers by elapsed seconds and applies gravity when
// the step timer runs out. It does nothing after game over.
func (s *Session) Tick(elapsed float64) {
	if s.gameOver || elapsed < 0 {
		return
	}

	s.piece.Advance(elapsed)
	if s.piece.StepDue() && s.piece.Step() {
		s.lock()
	}
}

// Command applies a player action and reports whether it changed the game
// state. Commands are ignored after game over.
func (s *Session) Command(cmd Command) bool {
	if s.gameOver {
		return false
	}

	switch cmd {
	case MoveLeft:
		_, moved := s.piece.Controlled(Left)
		return moved
	case MoveRight:
		_, moved := s.piece.Controlled(Right)
		return moved
	case SoftDrop:
		_, moved := s.piece.Controlled(Down)
		return moved
	case HardDrop:
		s.piece.HardDrop()
		s.lock()
		return true
	case RotateCW:
		return s.piece.Rotate(1)
	case RotateCCW:
		return s.piece.Rotate(-1)
	case Hold:
		return s.hold()
	default:
		return false
	}
}

// hold stashes the active kind. The first hold of a session discards the
// piece and spawns a random one; later holds swap with the stored kind. Only
// one hold is allowed between locks.
func (s *Session) hold() bool {
	if s.heldThisTurn {
		return false
	}
	s.heldThisTurn = true
	s.stats.Holds++

	current := s.piece.Kind()
	s.emit(Event{Type: EventHeld, Kind: current})

	if !s.hasHeld {
		s.held, s.hasHeld = current, true
		s.spawn(s.cfg.Randomizer.Next())
		return true
	}

	next := s.held
	s.held = current
	s.spawn(next)
	return true
}

// lock commits the piece, clears full rows and spawns the next piece.
func (s *Session) lock() {
	kind := s.piece.Kind()
	s.board.Commit(s.piece.Absolute(), s.piece.Tile())
	s.stats.Locked++
	s.heldThisTurn = false
	s.emit(Event{Type: EventLocked, Kind: kind})

	if lines := s.board.ClearFullRows(); lines > 0 {
		s.stats.Lines += lines
		s.emit(Event{Type: EventLinesCleared, Kind: kind, Lines: lines})
	}

	s.spawn(s.cfg.Randomizer.Next())
}

// spawn places the next piece. An unknown kind from the randomizer ends the
// game like a blocked spawn.
func (s *Session) spawn(kind Kind) {
	if !kind.Valid() {
		s.logger.Error("randomizer returned an unknown kind", "kind", kind.String())
		s.endGame(kind, "unknown kind")
		return
	}
	if !s.piece.Spawn(kind, s.cfg.Spawn) {
		s.endGame(kind, "spawn blocked")
		return
	}
	s.stats.Spawned++
	s.emit(Event{Type: EventSpawned, Kind: kind})
}

func (s *Session) endGame(kind Kind, reason string) {
	s.logger.Info("game over",
		"reason", reason,
		"kind", kind.String(),
		"locked", s.stats.Locked,
		"lines", s.stats.Lines,
	)

	s.board.Reset()
	s.gameOver = true
	s.emit(Event{Type: EventGameOver, Kind: kind})
}

// Restart empties the board and the hold slot and starts a new game. It may
// be called at any time, not only after game over.
func (s *Session) Restart() {
	s.board.Reset()
	s.held, s.hasHeld, s.heldThisTurn = 0, false, false
	s.gameOver = false
	s.stats = Stats{}

	s.logger.Info("session restarted")
	s.emit(Event{Type: EventRestarted})
	s.spawn(s.cfg.Randomizer.Next())
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns the events recorded since the last call and clears them.
func (s *Session) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

// IsGameOver reports whether the session has ended.
func (s *Session) IsGameOver() bool {
	return s.gameOver
}

// Board returns the committed board. Callers must not mutate it.
func (s *Session) Board() *Board {
	return s.board
}

// Occupied lists the committed tiles.
func (s *Session) Occupied() []Tile {
	return s.board.Occupied()
}

// Piece returns a snapshot of the active piece. ok is false after game over.
func (s *Session) Piece() (state PieceState, ok bool) {
	if s.gameOver {
		return PieceState{}, false
	}
	return s.piece.State(), true
}

// ActiveCells returns the absolute cells and tile of the active piece.
func (s *Session) ActiveCells() (cells [4]Cell, tile TileID, ok bool) {
	if s.gameOver {
		return cells, Empty, false
	}
	return s.piece.Absolute(), s.piece.Tile(), true
}

// GhostCells returns where the active piece would land on a hard drop.
func (s *Session) GhostCells() (cells [4]Cell, ok bool) {
	if s.gameOver {
		return cells, false
	}
	return Project(s.board, s.piece).Absolute(), true
}

// HeldKind returns the kind in the hold slot, if any.
func (s *Session) HeldKind() (Kind, bool) {
	return s.held, s.hasHeld
}

// CanHold reports whether a hold is allowed before the next lock.
func (s *Session) CanHold() bool {
	return !s.gameOver && !s.heldThisTurn
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}
