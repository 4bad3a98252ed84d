package component

const (
	WalkFrameDuration = 0.15
	WalkFrameCount    = 3
	WalkIdleFrame     = 1
)

// WalkAnimation selects the column of a walk cycle; the row comes from
// Facing.
type WalkAnimation struct {
	FrameTimer float64
	Frame      int
	Moving     bool
}

var WalkAnimationComponent = NewComponent[WalkAnimation]()
