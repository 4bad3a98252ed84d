package component

import (
	"errors"
	"math"
)

var ErrGridSize = errors.New("collision: blocked flags do not match grid size")

// CollisionGrid is a static walkable/blocked lookup over scene cells. The
// (0,0) cell's top-left corner sits at (OriginX, OriginY).
type CollisionGrid struct {
	Width    int
	Height   int
	TileSize float64
	OriginX  float64
	OriginY  float64

	blocked []bool
}

// NewCollisionGrid copies blocked, which is row-major with Width*Height
// entries.
func NewCollisionGrid(width, height int, tileSize, originX, originY float64, blocked []bool) (*CollisionGrid, error) {
	if width < 0 || height < 0 || len(blocked) != width*height {
		return nil, ErrGridSize
	}
	if tileSize <= 0 {
		tileSize = 1
	}
	return &CollisionGrid{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		OriginX:  originX,
		OriginY:  originY,
		blocked:  append([]bool(nil), blocked...),
	}, nil
}

// IsWalkable is false for blocked cells and for anything outside the grid.
func (g *CollisionGrid) IsWalkable(cx, cy int) bool {
	if g == nil || cx < 0 || cy < 0 || cx >= g.Width || cy >= g.Height {
		return false
	}
	i := cy*g.Width + cx
	if i >= len(g.blocked) {
		return false
	}
	return !g.blocked[i]
}

func (g *CollisionGrid) WorldToCell(x, y float64) (int, int) {
	if g == nil || g.TileSize <= 0 {
		return -1, -1
	}
	cx := math.Floor((x - g.OriginX) / g.TileSize)
	cy := math.Floor((y - g.OriginY) / g.TileSize)
	if math.IsNaN(cx) || math.IsNaN(cy) || math.IsInf(cx, 0) || math.IsInf(cy, 0) {
		return -1, -1
	}
	return clampCell(cx), clampCell(cy)
}

// CellCenter returns the world position of a cell's center.
func (g *CollisionGrid) CellCenter(cx, cy int) (float64, float64) {
	return g.OriginX + (float64(cx)+0.5)*g.TileSize, g.OriginY + (float64(cy)+0.5)*g.TileSize
}

// WalkableAt converts a world position and checks its cell.
func (g *CollisionGrid) WalkableAt(x, y float64) bool {
	return g.IsWalkable(g.WorldToCell(x, y))
}

// Blocked returns a copy of the row-major blocked flags.
func (g *CollisionGrid) Blocked() []bool {
	if g == nil {
		return nil
	}
	return append([]bool(nil), g.blocked...)
}

func clampCell(v float64) int {
	if v < math.MinInt32 {
		return math.MinInt32
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

var CollisionGridComponent = NewComponent[CollisionGrid]()
