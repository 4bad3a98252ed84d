package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type NPCTag struct{}

var NPCTagComponent = NewComponent[NPCTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
