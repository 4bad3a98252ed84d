package dialogue

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSessionActive = errors.New("dialogue: session already active")
	ErrInvalidScript = errors.New("dialogue: invalid script")
)

// Script is one NPC's linear conversation. Lines are shown in order.
type Script struct {
	Speaker  string   `json:"speaker" yaml:"speaker"`
	Portrait string   `json:"portrait,omitempty" yaml:"portrait"`
	Lines    []string `json:"lines" yaml:"lines"`
}

// Validate rejects scripts that could never reach a terminal line: no lines,
// or a line with nothing to reveal.
func (s Script) Validate() error {
	if len(s.Lines) == 0 {
		return fmt.Errorf("%w: no lines", ErrInvalidScript)
	}
	for i, line := range s.Lines {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: line %d is blank", ErrInvalidScript, i)
		}
	}
	return nil
}

// Clone copies the line slice so later edits to the source cannot leak into a
// registered script.
func (s Script) Clone() Script {
	s.Lines = append([]string(nil), s.Lines...)
	return s
}
