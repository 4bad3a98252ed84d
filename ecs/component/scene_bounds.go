package component

// SceneBounds stores the world-space extent of the active scene.
type SceneBounds struct {
	Width   float64
	Height  float64
	OriginX float64
	OriginY float64
}

func (b SceneBounds) CenterX() float64 { return b.OriginX + b.Width/2 }
func (b SceneBounds) CenterY() float64 { return b.OriginY + b.Height/2 }

var SceneBoundsComponent = NewComponent[SceneBounds]()
