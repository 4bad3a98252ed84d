package system

import (
	"testing"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

func requests(t *testing.T, w *ecs.World) []ecs.Entity {
	t.Helper()
	var npcs []ecs.Entity
	for _, e := range w.Query(component.DialogueRequestComponent.Kind()) {
		npcs = append(npcs, ecs.Entity(get(t, w, e, component.DialogueRequestComponent.Kind()).NPC))
	}
	return npcs
}

func TestProximityRecomputedEachFrame(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, 0, 0, false)
	npc := addNPC(t, w, "Mayor", 50, 0, "Hi.")
	prox := NewProximitySystem()

	stepFrame(w, 0.016, prox)
	if !get(t, w, npc, component.InteractableComponent.Kind()).InRange {
		t.Fatalf("expected npc in range at 50px")
	}

	get(t, w, p, component.TransformComponent.Kind()).X = -100
	stepFrame(w, 0.016, prox)
	if get(t, w, npc, component.InteractableComponent.Kind()).InRange {
		t.Fatalf("expected npc out of range at 150px")
	}
}

func TestProximityBoundaryInclusive(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, 0, 0, false)
	npc := addNPC(t, w, "Guard", 64, 0, "Halt.")
	stepFrame(w, 0.016, NewProximitySystem())
	if !get(t, w, npc, component.InteractableComponent.Kind()).InRange {
		t.Fatalf("distance equal to radius should be in range")
	}
}

func TestInteractionPicksNearest(t *testing.T) {
	cases := []struct {
		name string
		npcs [][2]float64
		want int // index into npcs, -1 for none
	}{
		{"nearest of two", [][2]float64{{0, 20}, {10, 0}}, 1},
		{"equal distance goes to lower id", [][2]float64{{0, 30}, {30, 0}}, 0},
		{"only one in range", [][2]float64{{0, 500}, {40, 0}}, 1},
		{"none in range", [][2]float64{{0, 500}, {500, 0}}, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := addPlayer(t, w, 0, 0, false)
			var ents []ecs.Entity
			for _, pos := range c.npcs {
				ents = append(ents, addNPC(t, w, "npc", pos[0], pos[1], "Hello."))
			}
			get(t, w, p, component.InputComponent.Kind()).Interact = true

			stepFrame(w, 0.016, NewProximitySystem(), NewInteractionSystem(quietLogger, true))

			got := requests(t, w)
			if c.want < 0 {
				if len(got) != 0 {
					t.Fatalf("expected no request, got %v", got)
				}
				return
			}
			if len(got) != 1 || got[0] != ents[c.want] {
				t.Fatalf("expected request for %v, got %v", ents[c.want], got)
			}
		})
	}
}

func TestInteractionNeedsPress(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, 0, 0, false)
	addNPC(t, w, "Mayor", 10, 0, "Hi.")
	stepFrame(w, 0.016, NewProximitySystem(), NewInteractionSystem(quietLogger, false))
	if got := requests(t, w); len(got) != 0 {
		t.Fatalf("expected no request without interact, got %v", got)
	}
}

func TestInteractionSkipsUnscriptedNPC(t *testing.T) {
	w := ecs.NewWorld()
	p := addPlayer(t, w, 0, 0, false)
	npc := addNPC(t, w, "Mute", 10, 0, "...")
	ecs.Remove(w, npc, component.InteractableComponent.Kind())
	get(t, w, p, component.InputComponent.Kind()).Interact = true

	stepFrame(w, 0.016, NewProximitySystem(), NewInteractionSystem(quietLogger, false))
	if got := requests(t, w); len(got) != 0 {
		t.Fatalf("expected no request for npc without Interactable, got %v", got)
	}
}
