package engine

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

// tilePalette is indexed by tile id. Tiles 1..7 follow the standard catalog
// order I, O, T, J, L, S, Z.
var tilePalette = []color.RGBA{
	{0, 0, 0, 0},
	{102, 191, 255, 255},
	{255, 203, 0, 255},
	{135, 60, 190, 255},
	{0, 121, 241, 255},
	{255, 161, 0, 255},
	{0, 158, 47, 255},
	{230, 41, 55, 255},
}

var (
	ghostColor    = color.RGBA{255, 255, 255, 80}
	fallbackColor = color.RGBA{200, 200, 200, 255}
)

// TileColor returns the display color for a tile id. Empty is fully
// transparent; ids outside the palette are drawn grey.
func TileColor(id tetris.TileID) color.RGBA {
	switch {
	case id == tetris.GhostTile:
		return ghostColor
	case int(id) < len(tilePalette):
		return tilePalette[id]
	default:
		return fallbackColor
	}
}

// TileGlyph returns a single character for text renderings of a tile.
func TileGlyph(id tetris.TileID) rune {
	switch {
	case id == tetris.Empty:
		return '.'
	case id == tetris.GhostTile:
		return ':'
	default:
		if kind, ok := tetris.DefaultCatalog().KindForTile(id); ok {
			return rune(kind.String()[0])
		}
		return '#'
	}
}
