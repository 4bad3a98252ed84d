package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type WindowSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"`
}

// GameSpec holds the settings that are not tied to one entity.
type GameSpec struct {
	Title          string     `yaml:"title"`
	Window         WindowSpec `yaml:"window"`
	DefaultScene   string     `yaml:"default_scene"`
	RevealInterval float64    `yaml:"reveal_interval"`
	Debug          bool       `yaml:"debug"`
	ShowPrompts    bool       `yaml:"show_prompts"`
}

const (
	defaultWindowWidth    = 960
	defaultWindowHeight   = 720
	defaultScene          = "town_of_endgame"
	defaultRevealInterval = 0.03
)

// LoadGameSpec reads game.yaml and fills anything left unset.
func LoadGameSpec() (GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return GameSpec{}, err
	}
	spec.applyDefaults()
	return spec, nil
}

func (s *GameSpec) applyDefaults() {
	if s.Title == "" {
		s.Title = "Townfolk"
	}
	if s.Window.Width <= 0 {
		s.Window.Width = defaultWindowWidth
	}
	if s.Window.Height <= 0 {
		s.Window.Height = defaultWindowHeight
	}
	if s.Window.Scale <= 0 {
		s.Window.Scale = 1
	}
	if s.DefaultScene == "" {
		s.DefaultScene = defaultScene
	}
	if s.RevealInterval <= 0 {
		s.RevealInterval = defaultRevealInterval
	}
}
