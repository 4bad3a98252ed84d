package component

import "github.com/milk9111/townfolk/dialogue"

// DialogueScript is the validated conversation an NPC offers. Hook names an
// optional script run after the conversation ends.
type DialogueScript struct {
	Script dialogue.Script
	Hook   string
}

var DialogueScriptComponent = NewComponent[DialogueScript]()
