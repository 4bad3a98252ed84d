// Package scenes loads and validates the maps the player explores.
package scenes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/townfolk/dialogue"
)

const DefaultTileSize = 48.0

var ErrInvalidScene = errors.New("scenes: invalid scene")

// Scene is the authored form of a map. Cell coordinates are tile indices with
// (0,0) at the top-left; the map is centered on the world origin.
type Scene struct {
	Name     string  `json:"name" jsonschema:"required,minLength=1"`
	Width    int     `json:"width" jsonschema:"required,minimum=1"`
	Height   int     `json:"height" jsonschema:"required,minimum=1"`
	TileSize float64 `json:"tile_size,omitempty" jsonschema:"minimum=1"`
	Tiles    []int   `json:"tiles" jsonschema:"required"`
	// Collision marks blocked cells with non-zero values. When absent only
	// the edge convention applies.
	Collision []int  `json:"collision,omitempty"`
	OpenEdges bool   `json:"open_edges,omitempty"`
	Tileset   string `json:"tileset,omitempty"`
	Player    Spawn  `json:"player"`
	NPCs      []NPC  `json:"npcs"`
	Exits     []Exit `json:"exits,omitempty"`
}

type Spawn struct {
	X int `json:"x" jsonschema:"minimum=0"`
	Y int `json:"y" jsonschema:"minimum=0"`
}

type NPC struct {
	Name     string   `json:"name" jsonschema:"required,minLength=1"`
	X        int      `json:"x" jsonschema:"required,minimum=0"`
	Y        int      `json:"y" jsonschema:"required,minimum=0"`
	Sprite   string   `json:"sprite"`
	Facing   string   `json:"facing,omitempty" jsonschema:"enum=down,enum=left,enum=right,enum=up"`
	Radius   float64  `json:"radius,omitempty" jsonschema:"minimum=0"`
	Dialogue Dialogue `json:"dialogue" jsonschema:"required"`
}

// Dialogue is an NPC's script as authored. Hook names a script under
// prefabs/scripts run after the conversation.
type Dialogue struct {
	Speaker  string   `json:"speaker"`
	Portrait string   `json:"portrait,omitempty"`
	Lines    []string `json:"lines" jsonschema:"required"`
	Hook     string   `json:"hook,omitempty"`
}

func (d Dialogue) Script() dialogue.Script {
	return dialogue.Script{Speaker: d.Speaker, Portrait: d.Portrait, Lines: d.Lines}
}

// Exit sends the player to another scene when they step on its cell.
type Exit struct {
	X  int    `json:"x" jsonschema:"required,minimum=0"`
	Y  int    `json:"y" jsonschema:"required,minimum=0"`
	To string `json:"to" jsonschema:"required,minLength=1"`
}

// Validate checks structure only; dialogue scripts are checked when the NPC
// is registered so one bad script cannot reject a whole scene.
func (s *Scene) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Name) == "" {
		add("name is empty")
	}
	if s.Width <= 0 || s.Height <= 0 {
		add("size %dx%d", s.Width, s.Height)
	}
	if s.TileSize < 0 {
		add("tile_size %v", s.TileSize)
	}
	n := s.Width * s.Height
	if len(s.Tiles) != n {
		add("tiles has %d entries, want %d", len(s.Tiles), n)
	}
	if s.Collision != nil && len(s.Collision) != n {
		add("collision has %d entries, want %d", len(s.Collision), n)
	}
	if !s.InBounds(s.Player.X, s.Player.Y) {
		add("player spawn (%d,%d) outside map", s.Player.X, s.Player.Y)
	}
	for i, npc := range s.NPCs {
		if !s.InBounds(npc.X, npc.Y) {
			add("npc %d %q at (%d,%d) outside map", i, npc.Name, npc.X, npc.Y)
		}
	}
	for i, exit := range s.Exits {
		if !s.InBounds(exit.X, exit.Y) {
			add("exit %d at (%d,%d) outside map", i, exit.X, exit.Y)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidScene, s.Name, strings.Join(problems, "; "))
	}
	return nil
}

func (s *Scene) InBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < s.Width && cy < s.Height
}

func (s *Scene) Tile() float64 {
	if s.TileSize <= 0 {
		return DefaultTileSize
	}
	return s.TileSize
}

// Origin is the world position of the top-left corner of cell (0,0).
func (s *Scene) Origin() (float64, float64) {
	t := s.Tile()
	return -float64(s.Width) * t / 2, -float64(s.Height) * t / 2
}

// CellToWorld returns the center of a cell in world space.
func (s *Scene) CellToWorld(cx, cy int) (float64, float64) {
	ox, oy := s.Origin()
	t := s.Tile()
	return ox + (float64(cx)+0.5)*t, oy + (float64(cy)+0.5)*t
}

// Blocked builds the row-major blocked flags: authored collision plus the
// map edge unless OpenEdges is set. Exit cells are always walkable.
func (s *Scene) Blocked() []bool {
	blocked := make([]bool, s.Width*s.Height)
	for i := range blocked {
		if i < len(s.Collision) && s.Collision[i] != 0 {
			blocked[i] = true
		}
	}
	if !s.OpenEdges {
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				if x == 0 || y == 0 || x == s.Width-1 || y == s.Height-1 {
					blocked[y*s.Width+x] = true
				}
			}
		}
	}
	for _, e := range s.Exits {
		if s.InBounds(e.X, e.Y) {
			blocked[e.Y*s.Width+e.X] = false
		}
	}
	return blocked
}
