package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/entity"
	"github.com/milk9111/townfolk/ecs/system"
	"github.com/milk9111/townfolk/prefabs"
	"github.com/milk9111/townfolk/scenes"
)

func newReloader(t *testing.T) *reloader {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)
	w := ecs.NewWorld()
	m := system.NewPipeline(system.PipelineConfig{
		Loader: &entity.SceneLoader{ViewportW: 320, ViewportH: 240, Logger: quiet},
		Hooks:  prefabs.LoadScript,
		Logger: quiet,
	})
	m.ChangeScene(w, "town_of_endgame")
	w.Tick(0.016)
	m.Update(w)
	if m.Phase() != system.PhaseExploring {
		t.Fatalf("phase = %v", m.Phase())
	}
	return &reloader{world: w, machine: m, logger: quiet}
}

func TestReloaderApply(t *testing.T) {
	cases := []struct {
		name      string
		path      string
		wantPhase system.Phase
	}{
		{"current scene json", filepath.Join("scenes", "data", "town_of_endgame.json"), system.PhaseLoading},
		{"other scene", filepath.Join("scenes", "data", "team_marathon.json"), system.PhaseExploring},
		{"hook script", filepath.Join("prefabs", "scripts", "mayor.tengo"), system.PhaseExploring},
		{"unrelated file", filepath.Join("prefabs", "notes.txt"), system.PhaseExploring},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newReloader(t)
			r.apply(tc.path)
			r.flush()
			if got := r.machine.Phase(); got != tc.wantPhase {
				t.Fatalf("phase = %v, want %v", got, tc.wantPhase)
			}
		})
	}
}

func TestReloaderGameSpec(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	spec := "reveal_interval: 0.5\nshow_prompts: false\n"
	if err := os.WriteFile(filepath.Join(dir, "game.yaml"), []byte(spec), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newReloader(t)
	var got prefabs.GameSpec
	called := false
	r.onSpec = func(s prefabs.GameSpec) { got, called = s, true }
	r.apply(filepath.Join(dir, "game.yaml"))
	if !called {
		t.Fatalf("onSpec not called")
	}
	if got.RevealInterval != 0.5 || got.ShowPrompts {
		t.Fatalf("spec = %+v", got)
	}
}

func TestReloaderHoldsOutsideExploring(t *testing.T) {
	r := newReloader(t)
	r.sceneDirty = true

	r.machine.ChangeScene(r.world, "team_marathon")
	r.flush()
	if !r.sceneDirty {
		t.Fatalf("reload applied outside exploring")
	}
}

func TestReloaderDrainNilWatcher(t *testing.T) {
	r := newReloader(t)
	r.drain(nil)
	if r.machine.Phase() != system.PhaseExploring {
		t.Fatalf("phase = %v", r.machine.Phase())
	}
}

func (r *reloader) step() {
	r.world.Tick(0.016)
	r.machine.Update(r.world)
}

// sceneDir points scene loading at a temp dir for the test.
func sceneDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := scenes.Dir
	scenes.Dir = dir
	t.Cleanup(func() { scenes.Dir = old })
	return dir
}

func TestReloaderRecoversFromBrokenSceneEdit(t *testing.T) {
	dir := sceneDir(t)
	r := newReloader(t)
	path := filepath.Join(dir, "town_of_endgame.json")

	if err := os.WriteFile(path, []byte(`{"name": "town_of_endgame", "width":`), 0o644); err != nil {
		t.Fatal(err)
	}
	r.apply(path)
	r.flush()
	r.step()
	if r.machine.Phase() != system.PhaseExploring || r.machine.Scene() != "town_of_endgame" {
		t.Fatalf("half-written scene: phase %v scene %q", r.machine.Phase(), r.machine.Scene())
	}

	good, err := scenes.ScenesFS.ReadFile("data/town_of_endgame.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, good, 0o644); err != nil {
		t.Fatal(err)
	}
	r.apply(path)
	if !r.sceneDirty {
		t.Fatalf("fixed scene file was ignored")
	}
	r.flush()
	if r.machine.Phase() != system.PhaseLoading {
		t.Fatalf("expected reload to start, got %v", r.machine.Phase())
	}
	r.step()
	if r.machine.Phase() != system.PhaseExploring || r.machine.Scene() != "town_of_endgame" {
		t.Fatalf("after fix: phase %v scene %q", r.machine.Phase(), r.machine.Scene())
	}
}

func TestReloaderRetriesFailedFirstLoad(t *testing.T) {
	dir := sceneDir(t)
	path := filepath.Join(dir, "town_of_endgame.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	quiet := log.New(io.Discard, "", 0)
	w := ecs.NewWorld()
	m := system.NewPipeline(system.PipelineConfig{
		Loader: &entity.SceneLoader{ViewportW: 320, ViewportH: 240, Logger: quiet},
		Hooks:  prefabs.LoadScript,
		Logger: quiet,
	})
	r := &reloader{world: w, machine: m, logger: quiet, lastScene: "town_of_endgame"}
	m.ChangeScene(w, "town_of_endgame")

	// Saving while the load is still queued is remembered, not lost.
	r.apply(path)
	r.step()
	if m.Phase() != system.PhaseLoading || m.Pending() != "" {
		t.Fatalf("broken first load: phase %v pending %q", m.Phase(), m.Pending())
	}

	good, err := scenes.ScenesFS.ReadFile("data/town_of_endgame.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, good, 0o644); err != nil {
		t.Fatal(err)
	}
	r.apply(path)
	r.flush()
	r.step()
	if m.Phase() != system.PhaseExploring || m.Scene() != "town_of_endgame" {
		t.Fatalf("after fix: phase %v scene %q", m.Phase(), m.Scene())
	}
}
