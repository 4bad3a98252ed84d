package system

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/milk9111/townfolk/dialogue"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/journal"
)

type memRecorder struct {
	entries []journal.Entry
	err     error
}

func (r *memRecorder) Record(_ context.Context, e journal.Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

type portraitSet map[string]bool

func (p portraitSet) HasImage(key string) bool { return p[key] }

func newDialogueWorld(t *testing.T, portrait string, lines ...string) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	p := addPlayer(t, w, 0, 0, false)
	npc := addNPC(t, w, "Mayor", 10, 0, lines...)
	get(t, w, npc, component.DialogueScriptComponent.Kind()).Script.Portrait = portrait
	return w, p, npc
}

func TestDialogueSystemRecordsSession(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	rec := &memRecorder{}

	w, p, npc := newDialogueWorld(t, "", "Hello.", "Goodbye.")
	d := NewDialogueSystem(DialogueSystemConfig{
		RevealInterval: 0.03,
		Tracer:         tp.Tracer("test"),
		Recorder:       rec,
		Logger:         quietLogger,
	})
	if err := d.Begin(w, npc); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	input := get(t, w, p, component.InputComponent.Kind())
	for _, adv := range []bool{false, true, true, false, true} {
		input.Advance = adv
		stepFrame(w, 0.05, d)
	}
	if !d.Active() {
		t.Fatalf("session ended early")
	}
	input.Advance = true
	stepFrame(w, 0.05, d)
	if d.Active() {
		t.Fatalf("expected session to be over")
	}

	if len(rec.entries) != 1 {
		t.Fatalf("expected one journal entry, got %d", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Outcome != "completed" || e.NPC != "Mayor" || e.Scene != "test" || e.LinesShown != 2 || e.CharsRead != len("Hello.Goodbye.") {
		t.Fatalf("unexpected entry %+v", e)
	}

	ended := w.Query(component.DialogueEndedComponent.Kind())
	if len(ended) != 1 {
		t.Fatalf("expected one end marker, got %d", len(ended))
	}
	if got := get(t, w, ended[0], component.DialogueEndedComponent.Kind()); ecs.Entity(got.NPC) != npc || got.Outcome != dialogue.OutcomeCompleted {
		t.Fatalf("unexpected end marker %+v", got)
	}

	spans := sr.Ended()
	if len(spans) != 1 || spans[0].Name() != "dialogue.session" {
		t.Fatalf("expected one dialogue.session span, got %d", len(spans))
	}
	attrs := map[string]bool{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = true
	}
	for _, k := range []string{"dialogue.chars_read", "dialogue.duration_secs", "dialogue.reading_speed", "dialogue.outcome"} {
		if !attrs[k] {
			t.Fatalf("span missing attribute %s", k)
		}
	}
	if n := len(spans[0].Events()); n != 2 {
		t.Fatalf("expected a line event per line shown, got %d", n)
	}
}

func TestDialogueSystemRecorderErrorIsNotFatal(t *testing.T) {
	w, _, npc := newDialogueWorld(t, "", "Hi.")
	d := NewDialogueSystem(DialogueSystemConfig{Recorder: &memRecorder{err: errors.New("disk full")}, Logger: quietLogger})
	if err := d.Begin(w, npc); err != nil {
		t.Fatal(err)
	}
	d.Cancel(w)
	if d.Active() {
		t.Fatalf("cancel should end the session")
	}
}

func TestDialogueSystemPortrait(t *testing.T) {
	cases := []struct {
		name     string
		portrait string
		known    portraitSet
		want     bool
	}{
		{"no portrait", "", portraitSet{}, false},
		{"known portrait", "mayor", portraitSet{"mayor": true}, true},
		{"missing portrait degrades", "ghost", portraitSet{"mayor": true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, _, npc := newDialogueWorld(t, c.portrait, "Hi.")
			d := NewDialogueSystem(DialogueSystemConfig{Portraits: c.known, Logger: quietLogger})
			if err := d.Begin(w, npc); err != nil {
				t.Fatal(err)
			}
			v, ok := d.View()
			if !ok {
				t.Fatalf("expected a view")
			}
			if v.HasPortrait != c.want {
				t.Fatalf("expected HasPortrait=%v, got %v", c.want, v.HasPortrait)
			}
		})
	}
}

func TestDialogueSystemBeginRejects(t *testing.T) {
	w, _, npc := newDialogueWorld(t, "", "Hi.")
	d := NewDialogueSystem(DialogueSystemConfig{Logger: quietLogger, Debug: true})

	plain := w.CreateEntity()
	if err := d.Begin(w, plain); !errors.Is(err, dialogue.ErrInvalidScript) {
		t.Fatalf("expected ErrInvalidScript for entity without script, got %v", err)
	}
	if err := d.Begin(w, npc); err != nil {
		t.Fatal(err)
	}
	if err := d.Begin(w, npc); !errors.Is(err, dialogue.ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
}
