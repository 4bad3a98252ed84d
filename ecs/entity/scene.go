package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/scenes"
)

// SceneLoader spawns scenes into a world. It satisfies system.SceneLoader.
type SceneLoader struct {
	// Source defaults to scenes.Load.
	Source    func(name string) (*scenes.Scene, error)
	ViewportW float64
	ViewportH float64
	Logger    *log.Logger
}

func (l *SceneLoader) LoadScene(w *ecs.World, name string) error {
	source := l.Source
	if source == nil {
		source = scenes.Load
	}
	scene, err := source(name)
	if err != nil {
		return err
	}
	return LoadSceneToWorld(w, name, scene, l.ViewportW, l.ViewportH, l.Logger)
}

// LoadSceneToWorld spawns the grid, tilemap, exits, player and NPCs of a
// scene, tagging each with SceneMember, and snaps the camera to the player.
// The caller is responsible for despawning the previous scene.
func LoadSceneToWorld(w *ecs.World, name string, scene *scenes.Scene, viewportW, viewportH float64, logger *log.Logger) error {
	if w == nil || scene == nil {
		return fmt.Errorf("entity: load scene %q: nil world or scene", name)
	}
	if err := scene.Validate(); err != nil {
		return err
	}

	tile := scene.Tile()
	ox, oy := scene.Origin()

	grid, err := component.NewCollisionGrid(scene.Width, scene.Height, tile, ox, oy, scene.Blocked())
	if err != nil {
		return fmt.Errorf("entity: load scene %q: %w", name, err)
	}
	ground := w.CreateEntity()
	if err := addAll(w, ground,
		func() error { return ecs.Add(w, ground, component.CollisionGridComponent.Kind(), grid) },
		func() error {
			return ecs.Add(w, ground, component.SceneBoundsComponent.Kind(), &component.SceneBounds{
				Width:   float64(scene.Width) * tile,
				Height:  float64(scene.Height) * tile,
				OriginX: ox,
				OriginY: oy,
			})
		},
		func() error {
			return ecs.Add(w, ground, component.TilemapComponent.Kind(), &component.Tilemap{
				Tileset:  scene.Tileset,
				Width:    scene.Width,
				Height:   scene.Height,
				TileSize: tile,
				OriginX:  ox,
				OriginY:  oy,
				Tiles:    append([]int(nil), scene.Tiles...),
			})
		},
		func() error { return ecs.Add(w, ground, component.SceneMemberComponent.Kind(), &component.SceneMember{Scene: name}) },
	); err != nil {
		return fmt.Errorf("entity: load scene %q: %w", name, err)
	}

	for _, exit := range scene.Exits {
		e := w.CreateEntity()
		if err := addAll(w, e,
			func() error {
				return ecs.Add(w, e, component.SceneExitComponent.Kind(), &component.SceneExit{CellX: exit.X, CellY: exit.Y, To: exit.To})
			},
			func() error { return ecs.Add(w, e, component.SceneMemberComponent.Kind(), &component.SceneMember{Scene: name}) },
		); err != nil {
			return fmt.Errorf("entity: load scene %q: exit: %w", name, err)
		}
	}

	px, py := scene.CellToWorld(scene.Player.X, scene.Player.Y)
	player, err := NewPlayerAt(w, px, py)
	if err != nil {
		return fmt.Errorf("entity: load scene %q: %w", name, err)
	}
	if err := ecs.Add(w, player, component.SceneMemberComponent.Kind(), &component.SceneMember{Scene: name}); err != nil {
		return fmt.Errorf("entity: load scene %q: %w", name, err)
	}

	for _, npc := range scene.NPCs {
		x, y := scene.CellToWorld(npc.X, npc.Y)
		if _, err := NewNPC(w, name, npc, x, y, logger); err != nil {
			warnf(logger, "entity: scene %q: %v", name, err)
		}
	}

	camera, err := EnsureCamera(w, viewportW, viewportH)
	if err != nil {
		return fmt.Errorf("entity: load scene %q: %w", name, err)
	}
	if cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind()); ok {
		cam.X, cam.Y = px, py
		cam.Bounds = nil
	}
	return nil
}

// addAll runs adds in order and destroys e on the first failure.
func addAll(w *ecs.World, e ecs.Entity, adds ...func() error) error {
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return err
		}
	}
	return nil
}
