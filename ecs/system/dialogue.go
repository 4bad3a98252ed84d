package system

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/milk9111/townfolk/dialogue"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
	"github.com/milk9111/townfolk/journal"
)

// SessionRecorder persists finished conversations.
type SessionRecorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// PortraitResolver reports whether a portrait key can be drawn.
type PortraitResolver interface {
	HasImage(key string) bool
}

type DialogueSystemConfig struct {
	RevealInterval float64
	Tracer         trace.Tracer
	LinesRead      metric.Int64Counter
	Recorder       SessionRecorder
	Portraits      PortraitResolver
	Logger         *log.Logger
	Debug          bool
}

// DialogueSystem drives the dialogue orchestrator from player input while
// conversing, and reports each finished session.
type DialogueSystem struct {
	orch      *dialogue.Orchestrator
	tracer    trace.Tracer
	linesRead metric.Int64Counter
	recorder  SessionRecorder
	portraits PortraitResolver
	logger    *log.Logger
	debug     bool

	npc        ecs.Entity
	npcName    string
	scene      string
	ctx        context.Context
	span       trace.Span
	portraitOK bool
	lastLine   int
}

func NewDialogueSystem(cfg DialogueSystemConfig) *DialogueSystem {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("townfolk/noop")
	}
	return &DialogueSystem{
		orch:      dialogue.NewOrchestrator(cfg.RevealInterval, cfg.Logger, cfg.Debug),
		tracer:    tracer,
		linesRead: cfg.LinesRead,
		recorder:  cfg.Recorder,
		portraits: cfg.Portraits,
		logger:    cfg.Logger,
		debug:     cfg.Debug,
	}
}

// SetRevealInterval applies a reloaded typewriter speed to later frames.
func (d *DialogueSystem) SetRevealInterval(interval float64) {
	if interval > 0 {
		d.orch.Interval = interval
	}
}

func (d *DialogueSystem) Active() bool {
	return d.orch.Active()
}

// NPC returns the entity being talked to.
func (d *DialogueSystem) NPC() (ecs.Entity, bool) {
	return d.npc, d.orch.Active()
}

// Begin opens a conversation with npc using its registered script.
func (d *DialogueSystem) Begin(w *ecs.World, npc ecs.Entity) error {
	script, ok := ecs.Get(w, npc, component.DialogueScriptComponent.Kind())
	if !ok {
		return fmt.Errorf("dialogue: entity %v has no script: %w", npc, dialogue.ErrInvalidScript)
	}
	if !ecs.Has(w, npc, component.InteractableComponent.Kind()) {
		return fmt.Errorf("dialogue: entity %v is not interactable: %w", npc, dialogue.ErrInvalidScript)
	}
	sess, err := d.orch.Start(script.Script)
	if err != nil {
		return err
	}

	d.npc = npc
	d.npcName = script.Script.Speaker
	if actor, ok := ecs.Get(w, npc, component.ActorComponent.Kind()); ok && actor.Name != "" {
		d.npcName = actor.Name
	}
	d.scene = ""
	if m, ok := ecs.Get(w, npc, component.SceneMemberComponent.Kind()); ok {
		d.scene = m.Scene
	}
	d.lastLine = 0

	d.portraitOK = true
	if p := script.Script.Portrait; p != "" && d.portraits != nil && !d.portraits.HasImage(p) {
		logWarn(d.logger, "dialogue: portrait %q for %s not found, showing none", p, d.npcName)
		d.portraitOK = false
	}

	d.ctx, d.span = d.tracer.Start(context.Background(), "dialogue.session",
		trace.WithAttributes(
			attribute.String("dialogue.session_id", sess.ID.String()),
			attribute.String("dialogue.speaker", sess.View().Speaker),
			attribute.String("dialogue.npc", d.npcName),
			attribute.String("scene.name", d.scene),
			attribute.Int("dialogue.total_lines", len(script.Script.Lines)),
		))
	d.addLine(0)
	return nil
}

func (d *DialogueSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var in dialogue.Input
	if playerEnt, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if input, ok := ecs.Get(w, playerEnt, component.InputComponent.Kind()); ok {
			in = dialogue.Input{Advance: input.Advance, Cancel: input.Cancel}
		}
	}

	d.step(w, in, w.Delta())
}

// Cancel ends the live conversation, if any, as if cancel were pressed.
func (d *DialogueSystem) Cancel(w *ecs.World) {
	if d.orch.Active() {
		d.step(w, dialogue.Input{Cancel: true}, 0)
	}
}

func (d *DialogueSystem) step(w *ecs.World, in dialogue.Input, dt float64) {
	outcome, sum := d.orch.Step(in, dt)
	if outcome == dialogue.OutcomeNone {
		if s := d.orch.Session(); s != nil && s.Line != d.lastLine {
			d.lastLine = s.Line
			d.addLine(s.Line)
		}
		return
	}
	d.finish(w, sum)
}

func (d *DialogueSystem) addLine(line int) {
	if d.span != nil {
		d.span.AddEvent("dialogue.line", trace.WithAttributes(attribute.Int("dialogue.line_index", line)))
	}
	if d.linesRead != nil && d.ctx != nil {
		d.linesRead.Add(d.ctx, 1, metric.WithAttributes(attribute.String("dialogue.npc", d.npcName)))
	}
}

func (d *DialogueSystem) finish(w *ecs.World, sum *dialogue.Summary) {
	if sum == nil {
		return
	}
	if d.span != nil {
		d.span.SetAttributes(
			attribute.String("dialogue.outcome", sum.Outcome.String()),
			attribute.Int("dialogue.lines_shown", sum.LinesShown),
			attribute.Int("dialogue.chars_read", sum.CharsRevealed),
			attribute.Float64("dialogue.duration_secs", sum.Elapsed),
			attribute.Float64("dialogue.reading_speed", sum.ReadingSpeed()),
		)
		d.span.End()
	}

	if d.recorder != nil {
		entry := journal.Entry{
			SessionID:  sum.ID.String(),
			Scene:      d.scene,
			NPC:        d.npcName,
			Speaker:    sum.Speaker,
			Outcome:    sum.Outcome.String(),
			LinesShown: sum.LinesShown,
			TotalLines: sum.TotalLines,
			CharsRead:  sum.CharsRevealed,
			Duration:   time.Duration(sum.Elapsed * float64(time.Second)),
		}
		if err := d.recorder.Record(d.ctx, entry); err != nil {
			logWarn(d.logger, "dialogue: journal: %v", err)
		}
	}

	if w != nil && w.IsAlive(d.npc) {
		ended := w.CreateEntity()
		_ = ecs.Add(w, ended, component.DialogueEndedComponent.Kind(), &component.DialogueEnded{
			NPC:        uint64(d.npc),
			Outcome:    sum.Outcome,
			LinesShown: sum.LinesShown,
		})
	}

	d.npc = 0
	d.span = nil
	d.ctx = nil
}

// View is the live dialogue box, with the portrait dropped when it could not
// be resolved.
func (d *DialogueSystem) View() (dialogue.View, bool) {
	v, ok := d.orch.View()
	if !ok {
		return v, false
	}
	if !d.portraitOK {
		v.HasPortrait = false
	}
	return v, true
}
