package component

// SceneChangeRequest is a one-shot request for the scene machine to load
// Scene. Only honored while exploring.
type SceneChangeRequest struct {
	Scene string
}

var SceneChangeRequestComponent = NewComponent[SceneChangeRequest]()
