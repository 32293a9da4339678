package tetris

import (
	"errors"
	"fmt"

	"github.com/kamstrup/intmap"
)

// ErrInvalidDimensions is returned for a non-positive board width or height.
var ErrInvalidDimensions = errors.New("invalid board dimensions")

// Bounds is the board rectangle. The max edges are exclusive.
type Bounds struct {
	XMin, YMin int
	XMax, YMax int
}

// Contains reports whether c lies inside the rectangle.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.XMin && c.X < b.XMax && c.Y >= b.YMin && c.Y < b.YMax
}

func (b Bounds) Width() int  { return b.XMax - b.XMin }
func (b Bounds) Height() int { return b.YMax - b.YMin }

// Board tracks which cells are occupied and by which tile. Only cells inside
// Bounds are ever stored.
type Board struct {
	bounds   Bounds
	tiles    *intmap.Map[int64, TileID]
	revision uint64
}

// NewBoard creates an empty board of the given size centered at the origin.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	xMin, yMin := -width/2, -height/2
	return &Board{
		bounds: Bounds{
			XMin: xMin,
			YMin: yMin,
			XMax: xMin + width,
			YMax: yMin + height,
		},
		tiles: intmap.New[int64, TileID](width * height),
	}, nil
}

// cellKey packs a cell into a single map key, X in the upper 32 bits.
func cellKey(c Cell) int64 {
	return int64(c.X)<<32 | int64(uint32(c.Y))
}

// Bounds returns the board rectangle.
func (b *Board) Bounds() Bounds {
	return b.bounds
}

// Revision changes every time the occupancy is mutated.
func (b *Board) Revision() uint64 {
	return b.revision
}

// Len returns the number of occupied cells.
func (b *Board) Len() int {
	return b.tiles.Len()
}

// TileAt returns the tile stored at c, or Empty.
func (b *Board) TileAt(c Cell) TileID {
	id, _ := b.tiles.Get(cellKey(c))
	return id
}

// Has reports whether c is occupied.
func (b *Board) Has(c Cell) bool {
	return b.occupied(c)
}

func (b *Board) occupied(c Cell) bool {
	_, ok := b.tiles.Get(cellKey(c))
	return ok
}

// IsValid reports whether every cell is inside the bounds and unoccupied.
// All collision decisions go through here.
func (b *Board) IsValid(cells [4]Cell) bool {
	for _, c := range cells {
		if !b.bounds.Contains(c) {
			return false
		}
		if b.occupied(c) {
			return false
		}
	}
	return true
}

// Commit marks cells as occupied by tile. Callers validate beforehand; cells
// outside the bounds are dropped.
func (b *Board) Commit(cells [4]Cell, tile TileID) {
	for _, c := range cells {
		b.set(c, tile)
	}
	b.revision++
}

// Release clears the given cells.
func (b *Board) Release(cells [4]Cell) {
	for _, c := range cells {
		b.tiles.Del(cellKey(c))
	}
	b.revision++
}

// Set stores tile at a single cell; Empty clears it. Cells outside the bounds
// are ignored.
func (b *Board) Set(c Cell, tile TileID) {
	b.set(c, tile)
	b.revision++
}

func (b *Board) set(c Cell, tile TileID) {
	if !b.bounds.Contains(c) {
		return
	}
	if tile == Empty {
		b.tiles.Del(cellKey(c))
		return
	}
	b.tiles.Put(cellKey(c), tile)
}

// RowCount returns how many cells of row y are occupied.
func (b *Board) RowCount(y int) int {
	n := 0
	for x := b.bounds.XMin; x < b.bounds.XMax; x++ {
		if b.occupied(Cell{X: x, Y: y}) {
			n++
		}
	}
	return n
}

func (b *Board) rowFull(y int) bool {
	for x := b.bounds.XMin; x < b.bounds.XMax; x++ {
		if !b.occupied(Cell{X: x, Y: y}) {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row and shifts the rows above it down.
// After a clear the same row index is tested again, so stacked full rows
// collapse in one pass. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	row := b.bounds.YMin

	for row < b.bounds.YMax {
		if b.rowFull(row) {
			b.clearRow(row)
			cleared++
		} else {
			row++
		}
	}

	if cleared > 0 {
		b.revision++
	}
	return cleared
}

func (b *Board) clearRow(row int) {
	for x := b.bounds.XMin; x < b.bounds.XMax; x++ {
		b.tiles.Del(cellKey(Cell{X: x, Y: row}))
	}

	for y := row; y < b.bounds.YMax; y++ {
		for x := b.bounds.XMin; x < b.bounds.XMax; x++ {
			above := b.TileAt(Cell{X: x, Y: y + 1})
			b.set(Cell{X: x, Y: y}, above)
		}
	}
}

// Reset empties the whole grid.
func (b *Board) Reset() {
	b.tiles.Clear()
	b.revision++
}

// Occupied lists every occupied cell, bottom row first and left to right.
func (b *Board) Occupied() []Tile {
	tiles := make([]Tile, 0, b.tiles.Len())
	for y := b.bounds.YMin; y < b.bounds.YMax; y++ {
		for x := b.bounds.XMin; x < b.bounds.XMax; x++ {
			c := Cell{X: x, Y: y}
			if id, ok := b.tiles.Get(cellKey(c)); ok {
				tiles = append(tiles, Tile{Cell: c, ID: id})
			}
		}
	}
	return tiles
}

// CopyFrom replaces the contents of b with those of src. Cells of src that
// fall outside b's bounds are dropped.
func (b *Board) CopyFrom(src *Board) {
	b.tiles.Clear()
	for _, tile := range src.Occupied() {
		b.set(tile.Cell, tile.ID)
	}
	b.revision++
}
