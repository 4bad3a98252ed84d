package component

// Tilemap is the drawable ground layer of a scene. Tiles are row-major tile
// indices into the Tileset sheet, 0 meaning empty.
type Tilemap struct {
	Tileset  string
	Width    int
	Height   int
	TileSize float64
	OriginX  float64
	OriginY  float64
	Tiles    []int
}

func (m *Tilemap) At(cx, cy int) int {
	if m == nil || cx < 0 || cy < 0 || cx >= m.Width || cy >= m.Height {
		return 0
	}
	i := cy*m.Width + cx
	if i >= len(m.Tiles) {
		return 0
	}
	return m.Tiles[i]
}

var TilemapComponent = NewComponent[Tilemap]()
