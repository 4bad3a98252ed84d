package entity

import (
	"fmt"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// NewCamera builds the camera prefab. A non-zero viewport overrides the one
// in camera.yaml so the camera matches the real window.
func NewCamera(w *ecs.World, viewportW, viewportH float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, err
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab has no camera component")
	}
	if viewportW > 0 {
		cam.ViewportW = viewportW
	}
	if viewportH > 0 {
		cam.ViewportH = viewportH
	}
	return camera, nil
}

// EnsureCamera returns the existing camera or builds one.
func EnsureCamera(w *ecs.World, viewportW, viewportH float64) (ecs.Entity, error) {
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		return e, nil
	}
	return NewCamera(w, viewportW, viewportH)
}
