package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/townfolk/assets"
)

// Registry converts loader images to ebiten images on first use. It must only
// be used from the game thread.
type Registry struct {
	loader *assets.Loader
	images map[string]*ebiten.Image
}

func NewRegistry(loader *assets.Loader) *Registry {
	return &Registry{loader: loader, images: map[string]*ebiten.Image{}}
}

// Image returns a cached image by key, or nil while assets are loading or if
// the key is unknown.
func (r *Registry) Image(key string) *ebiten.Image {
	if r == nil || key == "" {
		return nil
	}
	if img, ok := r.images[key]; ok {
		return img
	}
	if r.loader == nil || !r.loader.Ready() {
		return nil
	}
	src, ok := r.loader.Image(key)
	if !ok {
		r.images[key] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	r.images[key] = img
	return img
}

// Frame returns one cell of a sheet laid out in frameW x frameH cells.
func (r *Registry) Frame(key string, col, row, frameW, frameH int) *ebiten.Image {
	sheet := r.Image(key)
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return nil
	}
	rect := image.Rect(col*frameW, row*frameH, (col+1)*frameW, (row+1)*frameH)
	if !rect.In(sheet.Bounds()) {
		return nil
	}
	return sheet.SubImage(rect).(*ebiten.Image)
}

// Reset drops converted images so reloaded assets are picked up.
func (r *Registry) Reset() {
	for k, img := range r.images {
		if img != nil {
			img.Deallocate()
		}
		delete(r.images, k)
	}
}
