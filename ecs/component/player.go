package component

const DefaultMoveSpeed = 150.0

type Player struct {
	MoveSpeed float64
	// SlideOnBlock retries a blocked step one axis at a time instead of
	// discarding it.
	SlideOnBlock bool
}

var PlayerComponent = NewComponent[Player]()
