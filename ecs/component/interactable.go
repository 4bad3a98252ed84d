package component

const (
	DefaultInteractRadius = 64.0
	DefaultInteractPrompt = "Press E to talk"
)

// Interactable marks an NPC the player can start a conversation with.
// InRange is rewritten from scratch every exploring frame.
type Interactable struct {
	Radius  float64
	Prompt  string
	InRange bool
}

var InteractableComponent = NewComponent[Interactable]()
