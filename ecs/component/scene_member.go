package component

// SceneMember marks entities owned by a scene; they are destroyed when the
// scene changes.
type SceneMember struct {
	Scene string
}

var SceneMemberComponent = NewComponent[SceneMember]()
