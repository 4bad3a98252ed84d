package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an entity prefab: a name plus raw component specs keyed
// by component name, decoded lazily by whoever builds the entity.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type ActorComponentSpec struct {
	Name string `yaml:"name"`
}

type PlayerComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	SlideOnBlock bool    `yaml:"slide_on_block"`
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpriteComponentSpec struct {
	Key    string `yaml:"key"`
	FrameW int    `yaml:"frame_w"`
	FrameH int    `yaml:"frame_h"`
}

type FacingComponentSpec struct {
	Dir string `yaml:"dir"`
}

type CameraComponentSpec struct {
	Smoothness float64 `yaml:"smoothness"`
	ViewportW  float64 `yaml:"viewport_w"`
	ViewportH  float64 `yaml:"viewport_h"`
}

type InteractableComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Prompt string  `yaml:"prompt"`
}
