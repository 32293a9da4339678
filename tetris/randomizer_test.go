package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func draw(r tetris.Randomizer, n int) []tetris.Kind {
	kinds := make([]tetris.Kind, n)
	for i := range kinds {
		kinds[i] = r.Next()
	}
	return kinds
}

func TestUniformRandomizer(t *testing.T) {
	a := draw(tetris.NewUniformRandomizer(42), 200)
	b := draw(tetris.NewUniformRandomizer(42), 200)
	assert.Equal(t, a, b, "same seed gives same sequence")

	var counts [tetris.KindCount]int
	for _, kind := range a {
		assert.True(t, kind.Valid())
		counts[kind]++
	}
	for kind, n := range counts {
		assert.Positive(t, n, "kind %s never drawn", tetris.Kind(kind))
	}
}

func TestBagRandomizer(t *testing.T) {
	r := tetris.NewBagRandomizer(7)
	kinds := draw(r, tetris.KindCount*5)

	for bag := range 5 {
		assert.ElementsMatch(t, tetris.Kinds[:], kinds[bag*tetris.KindCount:(bag+1)*tetris.KindCount])
	}

	r.Next()
	assert.Len(t, r.Peek(), tetris.KindCount-1)
}

func TestSequenceRandomizer(t *testing.T) {
	r := tetris.NewSequenceRandomizer(tetris.T, tetris.I)
	assert.Equal(t, []tetris.Kind{tetris.T, tetris.I, tetris.T, tetris.I, tetris.T}, draw(r, 5))

	assert.Panics(t, func() { tetris.NewSequenceRandomizer() })

	f := tetris.RandomizerFunc(func() tetris.Kind { return tetris.Z })
	assert.Equal(t, tetris.Z, f.Next())
}
