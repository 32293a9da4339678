package tetris

// Ghost is the projected landing spot of a piece. It is derived data and is
// never committed to the board it was projected on.
type Ghost struct {
	Position Cell
	Cells    [4]Cell
}

// Absolute returns the board cells covered by the projection.
func (g Ghost) Absolute() [4]Cell {
	var out [4]Cell
	for i, c := range g.Cells {
		out[i] = c.Add(g.Position)
	}
	return out
}

// Project drops a copy of the piece's cells from its current row until the
// next row down is invalid. The scan stops one row below the floor at the
// latest.
func Project(board *Board, piece *Piece) Ghost {
	g := Ghost{
		Position: piece.Position(),
		Cells:    piece.Cells(),
	}

	bottom := -board.Bounds().Height()/2 - 1
	position := g.Position

	for row := position.Y; row >= bottom; row-- {
		position.Y = row
		if !board.IsValid(Ghost{Position: position, Cells: g.Cells}.Absolute()) {
			break
		}
		g.Position = position
	}

	return g
}
