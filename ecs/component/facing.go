package component

import "strings"

// Direction values double as sprite sheet rows.
type Direction int

const (
	DirDown Direction = iota
	DirLeft
	DirRight
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	default:
		return "down"
	}
}

// ParseDirection accepts the names used in scene files. Unknown names face
// down.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	}
	return DirDown, false
}

type Facing struct {
	Dir Direction
}

var FacingComponent = NewComponent[Facing]()
