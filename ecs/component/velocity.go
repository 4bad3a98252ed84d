package component

// Velocity is the displacement applied this frame, in pixels per second.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
