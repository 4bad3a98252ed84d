package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/scenes"
)

// NewNPC builds an NPC from npc.yaml and the scene's authored data. An NPC
// whose script fails validation still spawns but loses Interactable, so the
// player can never start a conversation with it.
func NewNPC(w *ecs.World, scene string, npc scenes.NPC, x, y float64, logger *log.Logger) (ecs.Entity, error) {
	e, err := BuildEntity(w, "npc.yaml")
	if err != nil {
		return 0, fmt.Errorf("npc %q: %w", npc.Name, err)
	}

	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("npc %q: %w", npc.Name, err)
	}

	if err := ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Name: npc.Name}); err != nil {
		return fail(err)
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.SceneMemberComponent.Kind(), &component.SceneMember{Scene: scene}); err != nil {
		return fail(err)
	}
	if npc.Facing != "" {
		dir, ok := component.ParseDirection(npc.Facing)
		if !ok {
			warnf(logger, "entity: npc %q: unknown facing %q, using down", npc.Name, npc.Facing)
		}
		if f, has := ecs.Get(w, e, component.FacingComponent.Kind()); has && ok {
			f.Dir = dir
		}
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && npc.Sprite != "" {
		sprite.Key = npc.Sprite
	}

	script := npc.Dialogue.Script()
	if err := ecs.Add(w, e, component.DialogueScriptComponent.Kind(), &component.DialogueScript{
		Script: script.Clone(),
		Hook:   npc.Dialogue.Hook,
	}); err != nil {
		return fail(err)
	}

	if err := script.Validate(); err != nil {
		warnf(logger, "entity: npc %q in %q is not talkable: %v", npc.Name, scene, err)
		ecs.Remove(w, e, component.InteractableComponent.Kind())
		return e, nil
	}
	if in, ok := ecs.Get(w, e, component.InteractableComponent.Kind()); ok && npc.Radius > 0 {
		in.Radius = npc.Radius
	}
	return e, nil
}

func warnf(l *log.Logger, format string, args ...any) {
	if l == nil {
		l = log.Default()
	}
	l.Printf("warn: "+format, args...)
}
