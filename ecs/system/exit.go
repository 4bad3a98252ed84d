package system

import (
	"log"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// ExitSystem emits a SceneChangeRequest when the player walks onto an exit
// cell. Spawning on an exit does not count; the player has to step onto it.
type ExitSystem struct {
	player   ecs.Entity
	lastX    int
	lastY    int
	tracking bool
	logger   *log.Logger
	debug    bool
}

func NewExitSystem(logger *log.Logger, debug bool) *ExitSystem {
	return &ExitSystem{logger: logger, debug: debug}
}

func (s *ExitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		s.tracking = false
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	var grid *component.CollisionGrid
	if ge, ok := w.First(component.CollisionGridComponent.Kind()); ok {
		grid, _ = ecs.Get(w, ge, component.CollisionGridComponent.Kind())
	}
	if grid == nil {
		return
	}

	cx, cy := grid.WorldToCell(t.X, t.Y)
	moved := s.tracking && s.player == player && (cx != s.lastX || cy != s.lastY)
	s.player, s.lastX, s.lastY, s.tracking = player, cx, cy, true
	if !moved {
		return
	}

	ecs.ForEach(w, component.SceneExitComponent.Kind(), func(_ ecs.Entity, exit *component.SceneExit) {
		if exit.CellX != cx || exit.CellY != cy || exit.To == "" {
			return
		}
		if len(w.Query(component.SceneChangeRequestComponent.Kind())) > 0 {
			return
		}
		logDebug(s.logger, s.debug, "exit: player reached (%d,%d) -> %q", cx, cy, exit.To)
		req := w.CreateEntity()
		_ = ecs.Add(w, req, component.SceneChangeRequestComponent.Kind(), &component.SceneChangeRequest{Scene: exit.To})
	})
}
