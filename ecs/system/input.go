package system

import (
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// ActionSource produces the logical actions for one frame. Keyboard, terminal
// and replay front-ends all implement it.
type ActionSource interface {
	Actions() component.Input
}

// ActionFunc adapts a plain function to ActionSource.
type ActionFunc func() component.Input

func (f ActionFunc) Actions() component.Input { return f() }

type InputSystem struct {
	source ActionSource
}

func NewInputSystem(source ActionSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	actions := i.source.Actions()
	actions.MoveX = clampAxis(actions.MoveX)
	actions.MoveY = clampAxis(actions.MoveY)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = actions
	})
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
