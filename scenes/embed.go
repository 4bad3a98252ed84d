package scenes

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed data/*.json data/*.tmx
var ScenesFS embed.FS

// Dir is checked before the embedded copy so edited scenes load without a
// rebuild.
var Dir = filepath.Join("scenes", "data")

// List returns every embedded scene name.
func List() []string {
	entries, err := fs.ReadDir(ScenesFS, "data")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if ext == ".json" || ext == ".tmx" {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(names)
	return names
}

// Load finds a scene by name, preferring JSON over TMX.
func Load(name string) (*Scene, error) {
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".json"), ".tmx")
	if data, err := read(name + ".json"); err == nil {
		return Parse(data)
	}
	if data, err := read(name + ".tmx"); err == nil {
		return ParseTMX(name, data)
	}
	return nil, fmt.Errorf("scenes: load %s: %w", name, fs.ErrNotExist)
}

func read(file string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, file)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(path.Join("data", file))
}

// Parse validates JSON against the schema, decodes it, and checks the
// cross-field rules the schema cannot express.
func Parse(data []byte) (*Scene, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenes: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
