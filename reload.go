package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/system"
	"github.com/milk9111/townfolk/prefabs"
)

// reloader applies file changes reported by the watcher. Scene reloads wait
// until no conversation is open. The scene name is remembered across Loading
// frames, when the machine reports none.
type reloader struct {
	world   *ecs.World
	machine *system.SceneMachine
	onSpec  func(prefabs.GameSpec)
	logger  *log.Logger

	sceneDirty bool
	lastScene  string
}

func (r *reloader) current() string {
	if name := r.machine.Scene(); name != "" {
		r.lastScene = name
	}
	return r.lastScene
}

func (r *reloader) apply(path string) {
	base := filepath.Base(path)
	switch {
	case base == "game.yaml":
		spec, err := prefabs.LoadGameSpec()
		if err != nil {
			r.logger.Printf("warn: reload %s: %v", base, err)
			return
		}
		if r.onSpec != nil {
			r.onSpec(spec)
		}
		r.logger.Printf("reloaded %s", base)
	case prefabs.IsScriptFile(path):
		if hooks := r.machine.Hooks(); hooks != nil {
			hooks.Invalidate(prefabs.ScriptName(path))
		}
		r.logger.Printf("reloaded hook %s", base)
	case prefabs.IsSceneFile(path):
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if name != "" && name == r.current() {
			r.sceneDirty = true
		}
	}
}

// flush reloads the current scene if its file changed. It also retries a
// scene whose first load failed.
func (r *reloader) flush() {
	name := r.current()
	if !r.sceneDirty || name == "" {
		return
	}
	switch r.machine.Phase() {
	case system.PhaseConversing:
		return
	case system.PhaseLoading:
		// A load is still queued; only retry once the machine gave up.
		if r.machine.Pending() != "" {
			return
		}
	}
	r.sceneDirty = false
	r.logger.Printf("reloading scene %s", name)
	r.machine.ChangeScene(r.world, name)
}

// drain applies every queued watcher event without blocking.
func (r *reloader) drain(w *prefabs.Watcher) {
	if w == nil {
		r.flush()
		return
	}
	errs := w.Errors
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				r.flush()
				return
			}
			r.apply(path)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.logger.Printf("warn: watcher: %v", err)
		default:
			r.flush()
			return
		}
	}
}
