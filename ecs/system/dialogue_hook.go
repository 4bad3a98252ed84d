package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// ScriptLoader returns the source of a named hook script.
type ScriptLoader func(name string) ([]byte, error)

// DialogueHookSystem runs an NPC's tengo hook once its conversation ends.
// Hook scripts see speaker, outcome and lines_shown, and may call face(dir)
// and log(msg). Failures are logged and never stop the game.
type DialogueHookSystem struct {
	load   ScriptLoader
	cache  map[string]*tengo.Compiled
	logger *log.Logger
	debug  bool
}

func NewDialogueHookSystem(load ScriptLoader, logger *log.Logger, debug bool) *DialogueHookSystem {
	return &DialogueHookSystem{
		load:   load,
		cache:  map[string]*tengo.Compiled{},
		logger: logger,
		debug:  debug,
	}
}

// Invalidate drops a cached hook so the next run recompiles it.
func (h *DialogueHookSystem) Invalidate(name string) {
	delete(h.cache, name)
}

func (h *DialogueHookSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.DialogueEndedComponent.Kind()) {
		ended, ok := ecs.Get(w, e, component.DialogueEndedComponent.Kind())
		if ok {
			h.run(w, ecs.Entity(ended.NPC), ended)
		}
		w.DestroyEntity(e)
	}
}

func (h *DialogueHookSystem) run(w *ecs.World, npc ecs.Entity, ended *component.DialogueEnded) {
	script, ok := ecs.Get(w, npc, component.DialogueScriptComponent.Kind())
	if !ok || strings.TrimSpace(script.Hook) == "" || h.load == nil {
		return
	}

	compiled, err := h.compile(script.Hook)
	if err != nil {
		logWarn(h.logger, "hook %s: %v", script.Hook, err)
		return
	}

	globals := map[string]any{
		"speaker":     script.Script.Speaker,
		"outcome":     ended.Outcome.String(),
		"lines_shown": ended.LinesShown,
		"face":        h.faceFunc(w, npc),
		"log":         h.logFunc(script.Hook),
	}
	for name, v := range globals {
		if err := compiled.Set(name, v); err != nil {
			logWarn(h.logger, "hook %s: set %s: %v", script.Hook, name, err)
			return
		}
	}
	if err := compiled.Run(); err != nil {
		logWarn(h.logger, "hook %s: run: %v", script.Hook, err)
		return
	}
	logDebug(h.logger, h.debug, "hook %s: ran for npc=%v outcome=%s", script.Hook, npc, ended.Outcome)
}

func (h *DialogueHookSystem) compile(name string) (*tengo.Compiled, error) {
	if c, ok := h.cache[name]; ok {
		return c, nil
	}
	src, err := h.load(name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("speaker", "")
	_ = script.Add("outcome", "")
	_ = script.Add("lines_shown", 0)
	_ = script.Add("face", &tengo.UserFunction{Name: "face"})
	_ = script.Add("log", &tengo.UserFunction{Name: "log"})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	h.cache[name] = compiled
	return compiled, nil
}

func (h *DialogueHookSystem) faceFunc(w *ecs.World, npc ecs.Entity) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "face", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		dir, ok := component.ParseDirection(objectAsString(args[0]))
		if !ok {
			return tengo.FalseValue, nil
		}
		facing, ok := ecs.Get(w, npc, component.FacingComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		facing.Dir = dir
		return tengo.TrueValue, nil
	}}
}

func (h *DialogueHookSystem) logFunc(hook string) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		l := h.logger
		if l == nil {
			l = log.Default()
		}
		l.Printf("hook %s: %s", hook, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
