package system

import (
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// FreezeSystem holds the player still for the length of a conversation.
type FreezeSystem struct{}

func NewFreezeSystem() *FreezeSystem {
	return &FreezeSystem{}
}

func (f *FreezeSystem) Update(w *ecs.World) {
	freezePlayer(w)
}

func freezePlayer(w *ecs.World) {
	if w == nil {
		return
	}
	playerEnt, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if vel, ok := ecs.Get(w, playerEnt, component.VelocityComponent.Kind()); ok {
		vel.X, vel.Y = 0, 0
	}
	if anim, ok := ecs.Get(w, playerEnt, component.WalkAnimationComponent.Kind()); ok {
		anim.Moving = false
		anim.Frame = component.WalkIdleFrame
		anim.FrameTimer = 0
	}
}
