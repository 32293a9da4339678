package tetris

import "math/rand/v2"

// Randomizer supplies the kind of each newly spawned piece.
type Randomizer interface {
	Next() Kind
}

// RandomizerFunc adapts a function to the Randomizer interface.
type RandomizerFunc func() Kind

func (f RandomizerFunc) Next() Kind { return f() }

// UniformRandomizer draws every kind with equal probability, independently.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer returns a uniform randomizer seeded with seed. Two
// randomizers with the same seed produce the same sequence.
func NewUniformRandomizer(seed uint64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *UniformRandomizer) Next() Kind {
	return Kind(r.rng.IntN(KindCount))
}

// BagRandomizer deals the seven kinds in shuffled bags so every kind appears
// once per seven spawns.
type BagRandomizer struct {
	rng *rand.Rand
	bag []Kind
}

// NewBagRandomizer returns a 7-bag randomizer seeded with seed.
func NewBagRandomizer(seed uint64) *BagRandomizer {
	return &BagRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *BagRandomizer) Next() Kind {
	if len(r.bag) == 0 {
		r.bag = append(r.bag[:0], Kinds[:]...)
		r.rng.Shuffle(len(r.bag), func(i, j int) {
			r.bag[i], r.bag[j] = r.bag[j], r.bag[i]
		})
	}

	kind := r.bag[0]
	r.bag = r.bag[1:]
	return kind
}

// Peek returns the kinds left in the current bag without consuming them.
func (r *BagRandomizer) Peek() []Kind {
	return append([]Kind(nil), r.bag...)
}

// SequenceRandomizer repeats a fixed list of kinds.
type SequenceRandomizer struct {
	kinds []Kind
	next  int
}

// NewSequenceRandomizer returns a randomizer cycling through kinds. It panics
// if kinds is empty.
func NewSequenceRandomizer(kinds ...Kind) *SequenceRandomizer {
	if len(kinds) == 0 {
		panic("tetris: empty kind sequence")
	}
	return &SequenceRandomizer{kinds: append([]Kind(nil), kinds...)}
}

func (r *SequenceRandomizer) Next() Kind {
	kind := r.kinds[r.next]
	r.next = (r.next + 1) % len(r.kinds)
	return kind
}
