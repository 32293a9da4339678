package tetris

import "fmt"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	J
	L
	S
	Z
)

// KindCount is the number of distinct tetromino kinds.
const KindCount = 7

// Kinds lists every kind in catalog order.
var Kinds = [KindCount]Kind{I, O, T, J, L, S, Z}

var kindNames = [KindCount]string{"I", "O", "T", "J", "L", "S", "Z"}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind named by s ("I", "O", ...).
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tetromino kind %q", s)
}

// halfCellPivot reports whether the kind rotates around a point between
// cells instead of around a cell center.
func (k Kind) halfCellPivot() bool {
	return k == I || k == O
}

// Cell is an integer grid coordinate. Y grows upward.
type Cell struct {
	X, Y int
}

// Add returns the component-wise sum of c and o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// TileID identifies the graphic drawn for an occupied cell. Zero means empty.
type TileID uint8

const (
	// Empty marks an unoccupied cell.
	Empty TileID = 0
	// GhostTile is the tile used when drawing the landing projection.
	GhostTile TileID = 255
)

// Tile pairs an occupied cell with its tile identifier.
type Tile struct {
	Cell Cell
	ID   TileID
}

// Translations used by movement commands and gravity.
var (
	Left  = Cell{X: -1}
	Right = Cell{X: 1}
	Down  = Cell{Y: -1}
)
