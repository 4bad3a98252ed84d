package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"camera_tag":     addCameraTag,
	"npc_tag":        addNPCTag,
	"actor":          addActor,
	"player":         addPlayer,
	"input":          addInput,
	"transform":      addTransform,
	"velocity":       addVelocity,
	"facing":         addFacing,
	"sprite":         addSprite,
	"walk_animation": addWalkAnimation,
	"camera":         addCamera,
	"interactable":   addInteractable,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"npc_tag",
	"actor",
	"player",
	"input",
	"transform",
	"velocity",
	"facing",
	"sprite",
	"walk_animation",
	"camera",
	"interactable",
}

// BuildEntity creates an entity from a prefab spec. Components are added in
// componentBuildOrder; anything else follows alphabetically. A failure
// destroys the half-built entity.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	names := make([]string, 0, len(spec.Components))
	seen := make(map[string]bool, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range spec.Components {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addNPCTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.NPCTagComponent.Kind(), &component.NPCTag{})
}

func addActor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ActorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	return ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Name: spec.Name})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	speed := spec.MoveSpeed
	if speed <= 0 {
		speed = component.DefaultMoveSpeed
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    speed,
		SlideOnBlock: spec.SlideOnBlock,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addFacing(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FacingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	dir := component.DirDown
	if spec.Dir != "" {
		d, ok := component.ParseDirection(spec.Dir)
		if !ok {
			return fmt.Errorf("facing: unknown direction %q", spec.Dir)
		}
		dir = d
	}
	return ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Dir: dir})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Key:    spec.Key,
		FrameW: spec.FrameW,
		FrameH: spec.FrameH,
	})
}

func addWalkAnimation(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WalkAnimationComponent.Kind(), &component.WalkAnimation{Frame: component.WalkIdleFrame})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	smooth := spec.Smoothness
	if smooth <= 0 {
		smooth = component.DefaultCameraSmoothness
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Smoothness: smooth,
		ViewportW:  spec.ViewportW,
		ViewportH:  spec.ViewportH,
	})
}

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InteractableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = component.DefaultInteractRadius
	}
	prompt := spec.Prompt
	if prompt == "" {
		prompt = component.DefaultInteractPrompt
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{Radius: radius, Prompt: prompt})
}
