package system

import (
	"github.com/milk9111/townfolk/common"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// ProximitySystem recomputes every Interactable's InRange flag against the
// player's current position.
type ProximitySystem struct{}

func NewProximitySystem() *ProximitySystem {
	return &ProximitySystem{}
}

func (p *ProximitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var player *component.Transform
	if playerEnt, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		player, _ = ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	}

	ecs.ForEach2(w,
		component.InteractableComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, it *component.Interactable, t *component.Transform) {
			it.InRange = false
			if player == nil {
				return
			}
			radius := it.Radius
			if radius <= 0 {
				radius = component.DefaultInteractRadius
			}
			it.InRange = common.Distance(player.X, player.Y, t.X, t.Y) <= radius
		})
}
