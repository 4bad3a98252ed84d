package component

// DialogueRequest is a one-shot request emitted by InteractionSystem asking
// the scene machine to open a conversation with NPC. Systems only emit data;
// the machine decides whether the phase allows it.
type DialogueRequest struct {
	NPC uint64 // ecs.Entity
}

var DialogueRequestComponent = NewComponent[DialogueRequest]()
