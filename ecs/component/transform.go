package component

// Transform is a world position in pixels. Y grows downward.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
