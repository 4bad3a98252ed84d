package system

import (
	"math"

	"github.com/milk9111/townfolk/common"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// CameraSystem eases the camera toward the player and keeps the view inside
// the scene.
type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	playerEnt, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if cam.Bounds == nil {
		if sbEnt, ok := w.First(component.SceneBoundsComponent.Kind()); ok {
			if sb, ok := ecs.Get(w, sbEnt, component.SceneBoundsComponent.Kind()); ok {
				cam.Bounds = NewCameraBounds(*sb, cam.ViewportW/2, cam.ViewportH/2)
			}
		}
	}

	tx, ty := ClampToBounds(cam.Bounds, target.X, target.Y)
	f := common.SmoothFactor(cam.Smoothness, w.Delta())
	cam.X = common.Lerp(cam.X, tx, f)
	cam.Y = common.Lerp(cam.Y, ty, f)
	// Lerp toward a collapsed axis can drift by float error; pin it.
	cam.X, cam.Y = ClampToBounds(cam.Bounds, cam.X, cam.Y)
}

// NewCameraBounds limits the camera center so a viewport with the given half
// extents never shows area outside the scene. On an axis where the scene is
// smaller than the viewport both limits collapse onto the scene center.
func NewCameraBounds(sb component.SceneBounds, halfW, halfH float64) *component.CameraBounds {
	hx := math.Min(math.Max(halfW, 0), math.Max(sb.Width, 0)/2)
	hy := math.Min(math.Max(halfH, 0), math.Max(sb.Height, 0)/2)
	return &component.CameraBounds{
		MinX: sb.OriginX + hx,
		MaxX: sb.OriginX + math.Max(sb.Width, 0) - hx,
		MinY: sb.OriginY + hy,
		MaxY: sb.OriginY + math.Max(sb.Height, 0) - hy,
	}
}

// ClampToBounds clamps each axis independently. Nil bounds leave the point
// unchanged.
func ClampToBounds(b *component.CameraBounds, x, y float64) (float64, float64) {
	if b == nil {
		return x, y
	}
	minX, maxX := b.MinX, b.MaxX
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := b.MinY, b.MaxY
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return common.ClampAxis(x, minX, maxX), common.ClampAxis(y, minY, maxY)
}
