package assets

import (
	"embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

//go:embed palette.yaml
var assetsFS embed.FS

type Swatch struct {
	Body string `yaml:"body"`
	Trim string `yaml:"trim"`
}

// Palette describes the generated placeholder art.
type Palette struct {
	FrameW       int                 `yaml:"frame_w"`
	FrameH       int                 `yaml:"frame_h"`
	PortraitSize int                 `yaml:"portrait_size"`
	Sprites      map[string]Swatch   `yaml:"sprites"`
	Portraits    map[string]Swatch   `yaml:"portraits"`
	Tilesets     map[string][]string `yaml:"tilesets"`
}

func LoadPalette() (Palette, error) {
	data, err := assetsFS.ReadFile("palette.yaml")
	if err != nil {
		return Palette{}, fmt.Errorf("assets: read palette: %w", err)
	}
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("assets: unmarshal palette: %w", err)
	}
	if p.FrameW <= 0 {
		p.FrameW = 48
	}
	if p.FrameH <= 0 {
		p.FrameH = 48
	}
	if p.PortraitSize <= 0 {
		p.PortraitSize = 96
	}
	return p, nil
}

// ParseColor accepts an SVG color name or #rrggbb. The empty string is
// transparent.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("assets: unknown color %q", s)
}
