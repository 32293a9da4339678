package tetris_test

import (
	"slices"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := tetris.DefaultCatalog()

	for _, kind := range tetris.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			tile := catalog.Tile(kind)
			assert.Equal(t, tetris.TileID(kind)+1, tile)

			found, ok := catalog.KindForTile(tile)
			assert.True(t, ok)
			assert.Equal(t, kind, found)

			for rotation := range 4 {
				for _, direction := range []int{1, -1} {
					kicks := catalog.Kicks(kind, rotation, direction)
					require.NotEmpty(t, kicks)
					assert.Equal(t, tetris.Cell{}, kicks[0])
				}
			}
		})
	}

	assert.Equal(t, [4]tetris.Cell{{-1, 1}, {0, 1}, {1, 1}, {2, 1}}, catalog.Cells(tetris.I))
	assert.Equal(t, [4]tetris.Cell{{0, 1}, {1, 1}, {0, 0}, {1, 0}}, catalog.Cells(tetris.O))
	assert.Same(t, catalog, tetris.DefaultCatalog())
}

func TestCatalogKickSelection(t *testing.T) {
	catalog := tetris.DefaultCatalog()

	// entering rotation 1 clockwise uses the third I row
	assert.Equal(t, []tetris.Cell{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
		catalog.Kicks(tetris.I, 1, 1))

	// entering rotation 0 counter-clockwise wraps to the last row
	assert.Equal(t, []tetris.Cell{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		catalog.Kicks(tetris.T, 0, -1))

	// entering rotation 1 counter-clockwise uses the second row
	assert.Equal(t, []tetris.Cell{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		catalog.Kicks(tetris.J, 1, -1))
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]tetris.Shape) []tetris.Shape
	}{
		{"missing kind", func(s []tetris.Shape) []tetris.Shape { return s[1:] }},
		{"duplicate kind", func(s []tetris.Shape) []tetris.Shape {
			s[1].Kind = tetris.I
			return s
		}},
		{"unknown kind", func(s []tetris.Shape) []tetris.Shape {
			s[0].Kind = 9
			return s
		}},
		{"empty tile", func(s []tetris.Shape) []tetris.Shape {
			s[2].Tile = tetris.Empty
			return s
		}},
		{"repeated base cell", func(s []tetris.Shape) []tetris.Shape {
			s[2].Cells[3] = s[2].Cells[0]
			return s
		}},
		{"empty kick table", func(s []tetris.Shape) []tetris.Shape {
			s[3].Kicks = nil
			return s
		}},
		{"single row kick table", func(s []tetris.Shape) []tetris.Shape {
			s[3].Kicks = [][]tetris.Cell{{{0, 0}, {0, 1}}}
			return s
		}},
		{"extra kick row", func(s []tetris.Shape) []tetris.Shape {
			s[3].Kicks = append(slices.Clone(s[3].Kicks), []tetris.Cell{{0, 0}})
			return s
		}},
		{"empty kick row", func(s []tetris.Shape) []tetris.Shape {
			kicks := slices.Clone(s[4].Kicks)
			kicks[5] = nil
			s[4].Kicks = kicks
			return s
		}},
		{"first kick is not zero", func(s []tetris.Shape) []tetris.Shape {
			kicks := slices.Clone(s[5].Kicks)
			kicks[0] = []tetris.Cell{{1, 0}, {0, 0}}
			s[5].Kicks = kicks
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tetris.NewCatalog(tt.mutate(tetris.StandardShapes()))
			assert.ErrorIs(t, err, tetris.ErrMalformedCatalog)
		})
	}
}

func TestKindNames(t *testing.T) {
	for _, kind := range tetris.Kinds {
		parsed, err := tetris.ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := tetris.ParseKind("X")
	assert.Error(t, err)
	assert.Equal(t, "Kind(9)", tetris.Kind(9).String())
	assert.False(t, tetris.Kind(7).Valid())
}
