package component

// Input stores per-frame logical actions for an entity. The bool actions are
// just-pressed edges, MoveX/MoveY are held axes in [-1, 1].
type Input struct {
	MoveX    float64
	MoveY    float64
	Interact bool
	Advance  bool
	Cancel   bool
}

var InputComponent = NewComponent[Input]()
