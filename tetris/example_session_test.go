package tetris_test

import (
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

func ExampleSession() {
	cfg := tetris.DefaultConfig()
	cfg.Randomizer = tetris.NewSequenceRandomizer(tetris.O, tetris.T)

	session, err := tetris.NewSession(cfg)
	if err != nil {
		panic(err)
	}

	session.Command(tetris.HardDrop)

	for _, tile := range session.Occupied() {
		fmt.Println(tile.Cell, tile.ID)
	}

	state, _ := session.Piece()
	fmt.Println("active:", state.Kind)

	// Output:
	// (-1,-10) 2
	// (0,-10) 2
	// (-1,-9) 2
	// (0,-9) 2
	// active: T
}
