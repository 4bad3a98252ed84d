package system

import (
	"math"

	"github.com/milk9111/townfolk/common"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// MovementSystem turns the player's move intent into a collision-gated step.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var grid *component.CollisionGrid
	if gridEnt, ok := w.First(component.CollisionGridComponent.Kind()); ok {
		grid, _ = ecs.Get(w, gridEnt, component.CollisionGridComponent.Kind())
	}

	dt := w.Delta()
	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, t *component.Transform, vel *component.Velocity) {
			anim, _ := ecs.Get(w, e, component.WalkAnimationComponent.Kind())

			dir := common.Direction(input.MoveX, input.MoveY)
			if dir.X == 0 && dir.Y == 0 {
				vel.X, vel.Y = 0, 0
				if anim != nil {
					anim.Moving = false
				}
				return
			}

			if facing, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
				facing.Dir = facingFor(dir.X, dir.Y)
			}

			speed := player.MoveSpeed
			if speed <= 0 {
				speed = component.DefaultMoveSpeed
			}
			v := dir.Mult(speed)
			step := v.Mult(dt)

			x, y, moved := resolveStep(grid, t.X, t.Y, step.X, step.Y, player.SlideOnBlock)
			if moved && dt > 0 {
				vel.X = (x - t.X) / dt
				vel.Y = (y - t.Y) / dt
			} else {
				vel.X, vel.Y = 0, 0
			}
			t.X, t.Y = x, y

			if anim != nil {
				anim.Moving = true
			}
		})
}

// resolveStep commits (x+dx, y+dy) only when its cell is walkable. With slide
// enabled a blocked step retries each axis alone, X first.
func resolveStep(grid *component.CollisionGrid, x, y, dx, dy float64, slide bool) (float64, float64, bool) {
	if dx == 0 && dy == 0 {
		return x, y, false
	}
	if grid.WalkableAt(x+dx, y+dy) {
		return x + dx, y + dy, true
	}
	if !slide {
		return x, y, false
	}
	if dx != 0 && grid.WalkableAt(x+dx, y) {
		return x + dx, y, true
	}
	if dy != 0 && grid.WalkableAt(x, y+dy) {
		return x, y + dy, true
	}
	return x, y, false
}

// facingFor prefers the vertical axis only when it strictly dominates.
func facingFor(x, y float64) component.Direction {
	if math.Abs(y) > math.Abs(x) {
		if y < 0 {
			return component.DirUp
		}
		return component.DirDown
	}
	if x < 0 {
		return component.DirLeft
	}
	return component.DirRight
}
