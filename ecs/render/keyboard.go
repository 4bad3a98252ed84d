package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/townfolk/ecs/component"
)

// KeyboardSource reads WASD/arrows for movement, E to interact,
// Space/Enter to advance and Escape to cancel.
type KeyboardSource struct{}

func NewKeyboardSource() *KeyboardSource { return &KeyboardSource{} }

func (k *KeyboardSource) Actions() component.Input {
	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY++
	}
	in.Interact = inpututil.IsKeyJustPressed(ebiten.KeyE)
	in.Advance = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	in.Cancel = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return in
}
