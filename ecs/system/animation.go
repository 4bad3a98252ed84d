package system

import (
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// AnimationSystem steps walk cycles; idle actors rest on the middle frame.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.WalkAnimationComponent.Kind(), func(e ecs.Entity, anim *component.WalkAnimation) {
		if !anim.Moving {
			anim.Frame = component.WalkIdleFrame
			anim.FrameTimer = 0
			return
		}
		anim.FrameTimer += dt
		for anim.FrameTimer >= component.WalkFrameDuration {
			anim.FrameTimer -= component.WalkFrameDuration
			anim.Frame = (anim.Frame + 1) % component.WalkFrameCount
		}
	})
}
