package system

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/milk9111/townfolk/ecs/component"
)

func hookSource(scripts map[string]string) ScriptLoader {
	return func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, fmt.Errorf("hook %q not found", name)
		}
		return []byte(src), nil
	}
}

func TestDialogueHookRunsAfterConversation(t *testing.T) {
	cases := []struct {
		name   string
		hook   string
		cancel bool
		want   component.Direction
	}{
		{"completed turns away", "wave", false, component.DirUp},
		{"cancelled turns left", "wave", true, component.DirLeft},
		{"broken hook is not fatal", "broken", false, component.DirDown},
		{"missing hook is not fatal", "nope", false, component.DirDown},
	}
	scripts := map[string]string{
		"wave": `
if outcome == "completed" {
	face("up")
} else {
	face("left")
}
log(speaker, outcome, lines_shown)
`,
		"broken": `face(`,
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newTown(t, hookSource(scripts), "Hello.")
			get(t, f.w, f.npcs["mayor"], component.DialogueScriptComponent.Kind()).Hook = c.hook
			f.explore(t)
			f.talk(t)
			if c.cancel {
				f.frame(0.016, component.Input{Cancel: true})
			} else {
				f.frame(0.016, component.Input{Advance: true})
				f.frame(0.016, component.Input{Advance: true})
			}
			if f.m.Phase() != PhaseExploring {
				t.Fatalf("expected exploring, got %v", f.m.Phase())
			}
			if got := get(t, f.w, f.npcs["mayor"], component.FacingComponent.Kind()).Dir; got != c.want {
				t.Fatalf("expected npc facing %v, got %v", c.want, got)
			}
		})
	}
}

func TestDialogueHookLog(t *testing.T) {
	var buf bytes.Buffer
	h := NewDialogueHookSystem(hookSource(map[string]string{"greet": `log("hi", speaker)`}), log.New(&buf, "", 0), false)

	f := newTown(t, nil, "Hello.")
	f.explore(t)
	npc := f.npcs["mayor"]
	get(t, f.w, npc, component.DialogueScriptComponent.Kind()).Hook = "greet"

	ended := f.w.CreateEntity()
	mustAdd(t, f.w, ended, component.DialogueEndedComponent.Kind(), &component.DialogueEnded{NPC: uint64(npc)})
	h.Update(f.w)

	if !strings.Contains(buf.String(), "hook greet: hi Mayor") {
		t.Fatalf("expected hook log line, got %q", buf.String())
	}
	if f.w.IsAlive(ended) {
		t.Fatalf("end marker should be consumed")
	}
}
