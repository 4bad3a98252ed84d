package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is checked before the embedded copies so specs and hooks can be edited
// while the game runs.
var Dir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript returns a hook script by name, with or without the scripts/
// prefix or .tengo suffix.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if clean == "" {
		return nil, fmt.Errorf("prefabs: empty script name")
	}
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var PrefabsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

// ScriptName maps a watched file path back to the name hooks are cached under.
func ScriptName(path string) string {
	return strings.TrimPrefix(cleanScriptPath(filepath.Base(path)), "scripts/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
		}
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}

	return "scripts/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
