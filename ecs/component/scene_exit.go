package component

// SceneExit is a cell that sends the player to another scene.
type SceneExit struct {
	CellX int
	CellY int
	To    string
}

var SceneExitComponent = NewComponent[SceneExit]()
