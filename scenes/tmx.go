package scenes

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from Tiled maps.
const (
	tmxGroundLayer    = "ground"
	tmxCollisionLayer = "collision"
	tmxNPCGroup       = "npcs"
	tmxSpawnGroup     = "spawns"
	tmxExitGroup      = "exits"
)

// ParseTMX converts a Tiled map into a Scene. NPC dialogue lives in object
// properties: speaker, portrait, hook, and lines separated by newlines.
func ParseTMX(name string, data []byte) (*Scene, error) {
	m, err := tiled.LoadReader("", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scenes: tmx %s: %w", name, err)
	}

	s := &Scene{
		Name:     name,
		Width:    m.Width,
		Height:   m.Height,
		TileSize: float64(m.TileWidth),
		Tiles:    make([]int, m.Width*m.Height),
		NPCs:     []NPC{},
	}
	if len(m.Tilesets) > 0 {
		s.Tileset = m.Tilesets[0].Name
	}
	if m.Properties != nil {
		if v := m.Properties.GetString("name"); v != "" {
			s.Name = v
		}
		s.OpenEdges = m.Properties.GetString("open_edges") == "true"
	}

	for i, layer := range m.Layers {
		switch {
		case layer.Name == tmxCollisionLayer:
			s.Collision = layerMask(layer.Tiles, len(s.Tiles))
		case layer.Name == tmxGroundLayer || (i == 0 && layer.Name != tmxCollisionLayer):
			for j, t := range layer.Tiles {
				if j >= len(s.Tiles) {
					break
				}
				if t != nil && !t.IsNil() {
					s.Tiles[j] = int(t.ID) + 1
				}
			}
		}
	}

	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	cell := func(x, y float64) (int, int) {
		return int(math.Floor(x / tw)), int(math.Floor(y / th))
	}

	for _, group := range m.ObjectGroups {
		switch group.Name {
		case tmxSpawnGroup:
			for _, obj := range group.Objects {
				if obj.Name == "player" {
					s.Player.X, s.Player.Y = cell(obj.X, obj.Y)
				}
			}
		case tmxNPCGroup:
			for _, obj := range group.Objects {
				prop := objectProps(obj)
				cx, cy := cell(obj.X, obj.Y)
				npc := NPC{
					Name:   obj.Name,
					X:      cx,
					Y:      cy,
					Sprite: prop("sprite"),
					Facing: prop("facing"),
					Dialogue: Dialogue{
						Speaker:  prop("speaker"),
						Portrait: prop("portrait"),
						Hook:     prop("hook"),
						Lines:    splitLines(prop("lines")),
					},
				}
				if r := prop("radius"); r != "" {
					v, err := strconv.ParseFloat(r, 64)
					if err != nil {
						return nil, fmt.Errorf("%w: npc %q radius %q", ErrInvalidScene, obj.Name, r)
					}
					npc.Radius = v
				}
				s.NPCs = append(s.NPCs, npc)
			}
		case tmxExitGroup:
			for _, obj := range group.Objects {
				cx, cy := cell(obj.X, obj.Y)
				s.Exits = append(s.Exits, Exit{X: cx, Y: cy, To: objectProps(obj)("to")})
			}
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func objectProps(obj *tiled.Object) func(string) string {
	return func(key string) string {
		if obj.Properties == nil {
			return ""
		}
		return obj.Properties.GetString(key)
	}
}

func layerMask(tiles []*tiled.LayerTile, n int) []int {
	mask := make([]int, n)
	for i, t := range tiles {
		if i >= n {
			break
		}
		if t != nil && !t.IsNil() {
			mask[i] = 1
		}
	}
	return mask
}

// splitLines breaks a multi-line property into dialogue lines. Tiled's text
// editor usually leaves a trailing newline, which is not a line.
func splitLines(raw string) []string {
	raw = strings.TrimRight(raw, "\r\n")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}
