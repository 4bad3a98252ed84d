package component

// Sprite names a sheet in the render registry. FrameW/FrameH are the cell
// size within the sheet.
type Sprite struct {
	Key    string
	FrameW int
	FrameH int
}

var SpriteComponent = NewComponent[Sprite]()
