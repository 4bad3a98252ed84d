package component

// Actor is anything that stands in the world and can be named in logs and
// snapshots: the player and every NPC.
type Actor struct {
	Name string
}

var ActorComponent = NewComponent[Actor]()
