package component

import "github.com/milk9111/townfolk/dialogue"

// DialogueEnded is emitted once when a conversation finishes and consumed by
// the hook system in the same frame.
type DialogueEnded struct {
	NPC        uint64 // ecs.Entity
	Outcome    dialogue.Outcome
	LinesShown int
}

var DialogueEndedComponent = NewComponent[DialogueEnded]()
