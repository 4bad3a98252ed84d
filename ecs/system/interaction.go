package system

import (
	"log"
	"math"

	"github.com/milk9111/townfolk/common"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// InteractionSystem turns an interact press into a DialogueRequest for the
// nearest in-range NPC. It must run after ProximitySystem in the same frame.
type InteractionSystem struct {
	Logger *log.Logger
	Debug  bool
}

func NewInteractionSystem(logger *log.Logger, debug bool) *InteractionSystem {
	return &InteractionSystem{Logger: logger, Debug: debug}
}

func (is *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	playerEnt, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, playerEnt, component.InputComponent.Kind())
	if !ok || !input.Interact {
		return
	}
	pt, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}

	npc, ok := NearestInRange(w, pt.X, pt.Y)
	if !ok {
		logDebug(is.Logger, is.Debug, "interaction: interact pressed with nobody in range")
		return
	}

	reqEnt := w.CreateEntity()
	_ = ecs.Add(w, reqEnt, component.DialogueRequestComponent.Kind(), &component.DialogueRequest{NPC: uint64(npc)})
	logDebug(is.Logger, is.Debug, "interaction: dialogue requested npc=%v", npc)
}

// NearestInRange picks the closest in-range NPC with a script. Equal
// distances go to the lower entity id, which is the query order.
func NearestInRange(w *ecs.World, x, y float64) (ecs.Entity, bool) {
	best := ecs.Entity(0)
	bestDist := math.Inf(1)
	ecs.ForEach3(w,
		component.InteractableComponent.Kind(),
		component.TransformComponent.Kind(),
		component.DialogueScriptComponent.Kind(),
		func(e ecs.Entity, it *component.Interactable, t *component.Transform, _ *component.DialogueScript) {
			if !it.InRange {
				return
			}
			d := common.Distance(x, y, t.X, t.Y)
			if d < bestDist {
				best, bestDist = e, d
			}
		})
	return best, best.Valid()
}
