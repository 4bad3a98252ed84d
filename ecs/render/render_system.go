package render

import (
	"bytes"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/townfolk/assets"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/ecs/system"
)

// RenderSystem draws the scene from a snapshot: ground tiles, actors in
// depth order, and the talk prompt over in-range NPCs. The dialogue box is
// drawn separately by the UI layer.
type RenderSystem struct {
	images      *Registry
	face        text.Face
	ShowPrompts bool
}

func NewRenderSystem(images *Registry) (*RenderSystem, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &RenderSystem{
		images:      images,
		face:        &text.GoTextFace{Source: src, Size: 14},
		ShowPrompts: true,
	}, nil
}

func (r *RenderSystem) Draw(screen *ebiten.Image, w *ecs.World, snap system.Snapshot) {
	if r == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Black)

	if snap.Phase == system.PhaseLoading.String() {
		r.drawText(screen, "Loading...", 16, 16, colornames.White)
		return
	}

	vw, vh := snap.Camera.ViewportW, snap.Camera.ViewportH
	if vw <= 0 || vh <= 0 {
		b := screen.Bounds()
		vw, vh = float64(b.Dx()), float64(b.Dy())
	}
	// world -> screen offset
	offX := vw/2 - snap.Camera.X
	offY := vh/2 - snap.Camera.Y

	if w != nil {
		if e, ok := w.First(component.TilemapComponent.Kind()); ok {
			if tm, ok := ecs.Get(w, e, component.TilemapComponent.Kind()); ok {
				r.drawTilemap(screen, tm, offX, offY, vw, vh)
			}
		}
	}

	actors := append([]system.ActorSnapshot(nil), snap.Actors...)
	sort.SliceStable(actors, func(i, j int) bool {
		if actors[i].Y != actors[j].Y {
			return actors[i].Y < actors[j].Y
		}
		return actors[i].Entity < actors[j].Entity
	})

	for _, a := range actors {
		r.drawActor(screen, a, offX, offY)
	}

	if r.ShowPrompts && snap.Dialogue == nil {
		for _, a := range actors {
			if a.Prompt == "" {
				continue
			}
			tw, _ := text.Measure(a.Prompt, r.face, 0)
			x := a.X + offX - tw/2
			y := a.Y + offY - 48
			vector.DrawFilledRect(screen, float32(x-4), float32(y-2), float32(tw+8), 20, color.RGBA{A: 0xb0}, false)
			r.drawText(screen, a.Prompt, x, y, colornames.White)
		}
	}
}

func (r *RenderSystem) drawTilemap(screen *ebiten.Image, tm *component.Tilemap, offX, offY, vw, vh float64) {
	size := int(tm.TileSize)
	if size <= 0 {
		return
	}
	sheetKey := assets.Key(assets.KindTileset, tm.Tileset)
	for cy := 0; cy < tm.Height; cy++ {
		y := tm.OriginY + float64(cy)*tm.TileSize + offY
		if y+tm.TileSize < 0 || y > vh {
			continue
		}
		for cx := 0; cx < tm.Width; cx++ {
			x := tm.OriginX + float64(cx)*tm.TileSize + offX
			if x+tm.TileSize < 0 || x > vw {
				continue
			}
			idx := tm.At(cx, cy)
			if idx == 0 {
				continue
			}
			tile := r.images.Frame(sheetKey, idx, 0, size, size)
			if tile == nil {
				vector.DrawFilledRect(screen, float32(x), float32(y), float32(tm.TileSize), float32(tm.TileSize), colornames.Darkolivegreen, false)
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x, y)
			screen.DrawImage(tile, op)
		}
	}
}

func (r *RenderSystem) drawActor(screen *ebiten.Image, a system.ActorSnapshot, offX, offY float64) {
	const frame = 48
	x := a.X + offX - frame/2
	y := a.Y + offY - frame/2

	img := r.images.Frame(assets.Key(assets.KindSprite, a.Sprite), a.Frame, a.Row, frame, frame)
	if img == nil {
		c := colornames.Lightgray
		if a.Player {
			c = colornames.Royalblue
		}
		vector.DrawFilledRect(screen, float32(x+frame/4), float32(y+frame/6), frame/2, frame*2/3, c, false)
	} else {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
	}

	if a.InRange {
		vector.StrokeRect(screen, float32(x), float32(y), frame, frame, 1, colornames.Gold, false)
	}
}

func (r *RenderSystem) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, r.face, op)
}
