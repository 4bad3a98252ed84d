package system

import (
	"io"
	"log"
	"testing"

	"github.com/milk9111/townfolk/dialogue"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

var quietLogger = log.New(io.Discard, "", 0)

// helperScene is the SceneMember name given to NPCs built by addNPC.
const helperScene = "test"

// scriptedInput is an ActionSource whose next frame is set by the test.
type scriptedInput struct {
	current component.Input
}

func (s *scriptedInput) Actions() component.Input { return s.current }

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add %T to %v: %v", v, e, err)
	}
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		var zero T
		t.Fatalf("entity %v has no %T", e, zero)
	}
	return v
}

// stepFrame advances the world clock once and runs systems in order.
func stepFrame(w *ecs.World, dt float64, systems ...ecs.System) {
	w.Tick(dt)
	for _, s := range systems {
		s.Update(w)
	}
}

// addGrid spawns a collision grid and matching scene bounds. A nil blocked
// slice means every cell is walkable.
func addGrid(t *testing.T, w *ecs.World, width, height int, tile, originX, originY float64, blocked []bool) ecs.Entity {
	t.Helper()
	if blocked == nil {
		blocked = make([]bool, width*height)
	}
	grid, err := component.NewCollisionGrid(width, height, tile, originX, originY, blocked)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	e := w.CreateEntity()
	mustAdd(t, w, e, component.CollisionGridComponent.Kind(), grid)
	mustAdd(t, w, e, component.SceneBoundsComponent.Kind(), &component.SceneBounds{
		Width:   float64(width) * tile,
		Height:  float64(height) * tile,
		OriginX: originX,
		OriginY: originY,
	})
	mustAdd(t, w, e, component.SceneMemberComponent.Kind(), &component.SceneMember{Scene: helperScene})
	return e
}

// addPlayer spawns the player the way player.yaml does, facing down on the
// idle frame.
func addPlayer(t *testing.T, w *ecs.World, x, y float64, slide bool) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.ActorComponent.Kind(), &component.Actor{Name: "player"})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: component.DefaultMoveSpeed, SlideOnBlock: slide})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, e, component.FacingComponent.Kind(), &component.Facing{Dir: component.DirDown})
	mustAdd(t, w, e, component.WalkAnimationComponent.Kind(), &component.WalkAnimation{Frame: component.WalkIdleFrame})
	return e
}

// addNPC spawns a talkable NPC whose speaker is its name. It belongs to the
// "test" scene.
func addNPC(t *testing.T, w *ecs.World, name string, x, y float64, lines ...string) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.NPCTagComponent.Kind(), &component.NPCTag{})
	mustAdd(t, w, e, component.ActorComponent.Kind(), &component.Actor{Name: name})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.FacingComponent.Kind(), &component.Facing{Dir: component.DirDown})
	mustAdd(t, w, e, component.SceneMemberComponent.Kind(), &component.SceneMember{Scene: helperScene})
	mustAdd(t, w, e, component.DialogueScriptComponent.Kind(), &component.DialogueScript{
		Script: dialogue.Script{Speaker: name, Lines: append([]string(nil), lines...)},
	})
	mustAdd(t, w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Radius: component.DefaultInteractRadius,
		Prompt: component.DefaultInteractPrompt,
	})
	return e
}

func addCamera(t *testing.T, w *ecs.World, x, y, viewportW, viewportH float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
	mustAdd(t, w, e, component.CameraComponent.Kind(), &component.Camera{
		X:          x,
		Y:          y,
		Smoothness: component.DefaultCameraSmoothness,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
	})
	return e
}
