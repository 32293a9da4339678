package tetris

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrMalformedCatalog is returned when shape data is incomplete or inconsistent.
var ErrMalformedCatalog = errors.New("malformed tetromino catalog")

// Transition keys a wall-kick list: the rotation index being entered and the
// direction of the turn (+1 clockwise, -1 counter-clockwise).
type Transition struct {
	Rotation  int
	Direction int
}

// KickRows is the number of wall-kick rows a shape must define, one per
// rotation and direction.
const KickRows = 8

// Shape is the raw definition of one kind. Kicks holds the KickRows wall-kick
// rows in table order; row selection for a transition is done by kickRow.
type Shape struct {
	Kind  Kind
	Tile  TileID
	Cells [4]Cell
	Kicks [][]Cell
}

type shapeData struct {
	tile  TileID
	cells [4]Cell
	kicks map[Transition][]Cell
}

// Catalog holds the immutable per-kind data used by pieces. It is safe for
// concurrent reads once constructed.
type Catalog struct {
	shapes [KindCount]shapeData
}

// NewCatalog validates the given shapes and resolves their kick tables into
// (rotation, direction) lookups. Every kind must be defined exactly once.
func NewCatalog(shapes []Shape) (*Catalog, error) {
	c := &Catalog{}
	var seen [KindCount]bool

	for _, shape := range shapes {
		if !shape.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown kind %d", ErrMalformedCatalog, shape.Kind)
		}
		if seen[shape.Kind] {
			return nil, fmt.Errorf("%w: kind %s defined twice", ErrMalformedCatalog, shape.Kind)
		}
		if shape.Tile == Empty || shape.Tile == GhostTile {
			return nil, fmt.Errorf("%w: kind %s uses reserved tile %d", ErrMalformedCatalog, shape.Kind, shape.Tile)
		}
		for i, cell := range shape.Cells {
			if slices.Contains(shape.Cells[i+1:], cell) {
				return nil, fmt.Errorf("%w: kind %s repeats cell %s", ErrMalformedCatalog, shape.Kind, cell)
			}
		}
		if len(shape.Kicks) != KickRows {
			return nil, fmt.Errorf("%w: kind %s has %d wall-kick rows, want %d",
				ErrMalformedCatalog, shape.Kind, len(shape.Kicks), KickRows)
		}

		kicks := make(map[Transition][]Cell, 8)
		for rotation := range 4 {
			for _, direction := range []int{1, -1} {
				row := shape.Kicks[kickRow(rotation, direction, len(shape.Kicks))]
				if len(row) == 0 {
					return nil, fmt.Errorf("%w: kind %s has no kicks for rotation %d direction %d",
						ErrMalformedCatalog, shape.Kind, rotation, direction)
				}
				if row[0] != (Cell{}) {
					return nil, fmt.Errorf("%w: kind %s kick list for rotation %d direction %d must start at (0,0)",
						ErrMalformedCatalog, shape.Kind, rotation, direction)
				}
				kicks[Transition{Rotation: rotation, Direction: direction}] = append([]Cell(nil), row...)
			}
		}

		c.shapes[shape.Kind] = shapeData{
			tile:  shape.Tile,
			cells: shape.Cells,
			kicks: kicks,
		}
		seen[shape.Kind] = true
	}

	for kind, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: kind %s is missing", ErrMalformedCatalog, Kind(kind))
		}
	}

	return c, nil
}

// Cells returns the base relative offsets of kind at rotation 0.
func (c *Catalog) Cells(kind Kind) [4]Cell {
	return c.shape(kind).cells
}

// Tile returns the tile identifier committed for kind.
func (c *Catalog) Tile(kind Kind) TileID {
	return c.shape(kind).tile
}

// Kicks returns the ordered candidate translations tried when kind enters
// rotation turning in direction. The returned slice must not be modified.
func (c *Catalog) Kicks(kind Kind, rotation, direction int) []Cell {
	if direction < 0 {
		direction = -1
	} else {
		direction = 1
	}
	return c.shape(kind).kicks[Transition{Rotation: wrap(rotation, 4), Direction: direction}]
}

// KindForTile returns the kind whose tile is id.
func (c *Catalog) KindForTile(id TileID) (Kind, bool) {
	for _, kind := range Kinds {
		if c.shapes[kind].tile == id {
			return kind, true
		}
	}
	return 0, false
}

func (c *Catalog) shape(kind Kind) *shapeData {
	if !kind.Valid() {
		panic("tetris: unknown kind " + kind.String())
	}
	return &c.shapes[kind]
}

// kickRow selects the wall-kick table row for entering rotation in the given
// direction. Clockwise and counter-clockwise turns into the same state use
// adjacent rows.
func kickRow(rotation, direction, rows int) int {
	index := rotation * 2
	if direction < 0 {
		index--
	}
	return wrap(index, rows)
}

// wrap maps v into [0, n).
func wrap(v, n int) int {
	return ((v % n) + n) % n
}

var (
	kicksI = [][]Cell{
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	}

	kicksJLOSTZ = [][]Cell{
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	}
)

// StandardShapes returns the SRS shape definitions. Tiles are numbered from 1
// in Kinds order.
func StandardShapes() []Shape {
	return []Shape{
		{Kind: I, Tile: 1, Cells: [4]Cell{{-1, 1}, {0, 1}, {1, 1}, {2, 1}}, Kicks: kicksI},
		{Kind: O, Tile: 2, Cells: [4]Cell{{0, 1}, {1, 1}, {0, 0}, {1, 0}}, Kicks: kicksJLOSTZ},
		{Kind: T, Tile: 3, Cells: [4]Cell{{0, 1}, {-1, 0}, {0, 0}, {1, 0}}, Kicks: kicksJLOSTZ},
		{Kind: J, Tile: 4, Cells: [4]Cell{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}}, Kicks: kicksJLOSTZ},
		{Kind: L, Tile: 5, Cells: [4]Cell{{1, 1}, {-1, 0}, {0, 0}, {1, 0}}, Kicks: kicksJLOSTZ},
		{Kind: S, Tile: 6, Cells: [4]Cell{{0, 1}, {1, 1}, {-1, 0}, {0, 0}}, Kicks: kicksJLOSTZ},
		{Kind: Z, Tile: 7, Cells: [4]Cell{{-1, 1}, {0, 1}, {0, 0}, {1, 0}}, Kicks: kicksJLOSTZ},
	}
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(StandardShapes())
	if err != nil {
		panic(err)
	}
	return c
})

// DefaultCatalog returns the shared SRS catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}
