package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/engine/debugui"
	"github.com/plus3/blockfall/tetris"
)

// binding maps keys to a command. Held bindings fire every frame the key is
// down and rely on the session's controlled-step limit for repeat rate.
type binding struct {
	keys []ebiten.Key
	cmd  tetris.Command
	held bool
}

// bindings are polled in order; the first match of an exclusive group wins.
var (
	rotateBindings = []binding{
		{keys: []ebiten.Key{ebiten.KeyQ, ebiten.KeyZ}, cmd: tetris.RotateCCW},
		{keys: []ebiten.Key{ebiten.KeyE, ebiten.KeyX, ebiten.KeyUp}, cmd: tetris.RotateCW},
	}
	shiftBindings = []binding{
		{keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, cmd: tetris.MoveLeft, held: true},
		{keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyRight}, cmd: tetris.MoveRight, held: true},
	}
	otherBindings = []binding{
		{keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, cmd: tetris.SoftDrop, held: true},
		{keys: []ebiten.Key{ebiten.KeySpace}, cmd: tetris.HardDrop},
		{keys: []ebiten.Key{ebiten.KeyV, ebiten.KeyC}, cmd: tetris.Hold},
	}
)

// Keyboard reads player commands from the ebiten key state. Keys are ignored
// while a debug window has keyboard focus.
type Keyboard struct {
	UI *debugui.ImguiSystem
}

func (k *Keyboard) Poll() []tetris.Command {
	if k.UI != nil && !k.UI.Hidden && k.UI.InputState.WantCaptureKeyboard {
		return nil
	}

	var cmds []tetris.Command
	if b, ok := firstActive(rotateBindings); ok {
		cmds = append(cmds, b.cmd)
	}
	if b, ok := firstActive(shiftBindings); ok {
		cmds = append(cmds, b.cmd)
	}
	for _, b := range otherBindings {
		if active(b) {
			cmds = append(cmds, b.cmd)
		}
	}
	return cmds
}

func firstActive(group []binding) (binding, bool) {
	for _, b := range group {
		if active(b) {
			return b, true
		}
	}
	return binding{}, false
}

func active(b binding) bool {
	for _, key := range b.keys {
		if b.held && ebiten.IsKeyPressed(key) {
			return true
		}
		if !b.held && inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
