package system

import (
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

// Snapshot is the read-only frame state handed to renderers and observers.
type Snapshot struct {
	Frame    uint64            `json:"frame"`
	Phase    string            `json:"phase"`
	Scene    string            `json:"scene,omitempty"`
	Camera   CameraSnapshot    `json:"camera"`
	Actors   []ActorSnapshot   `json:"actors"`
	Dialogue *DialogueSnapshot `json:"dialogue,omitempty"`
}

type CameraSnapshot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ViewportW float64 `json:"viewport_w"`
	ViewportH float64 `json:"viewport_h"`
}

type ActorSnapshot struct {
	Entity   uint64  `json:"entity"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Facing   string  `json:"facing"`
	Row      int     `json:"row"`
	Frame    int     `json:"frame"`
	Sprite   string  `json:"sprite,omitempty"`
	Player   bool    `json:"player,omitempty"`
	InRange  bool    `json:"in_range,omitempty"`
	Prompt   string  `json:"prompt,omitempty"`
	Talkable bool    `json:"talkable,omitempty"`
}

type DialogueSnapshot struct {
	Speaker      string `json:"speaker"`
	Text         string `json:"text"`
	Portrait     string `json:"portrait,omitempty"`
	HasPortrait  bool   `json:"has_portrait"`
	LineComplete bool   `json:"line_complete"`
	Line         int    `json:"line"`
	TotalLines   int    `json:"total_lines"`
}

// TakeSnapshot copies what a renderer needs. Dialogue is set only while
// conversing.
func TakeSnapshot(w *ecs.World, m *SceneMachine) Snapshot {
	snap := Snapshot{Frame: w.Frame(), Phase: PhaseLoading.String()}
	if m != nil {
		snap.Phase = m.Phase().String()
		snap.Scene = m.Scene()
	}

	if camEnt, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind()); ok {
			snap.Camera = CameraSnapshot{X: cam.X, Y: cam.Y, ViewportW: cam.ViewportW, ViewportH: cam.ViewportH}
		}
	}

	ecs.ForEach2(w,
		component.ActorComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, actor *component.Actor, t *component.Transform) {
			a := ActorSnapshot{
				Entity: uint64(e),
				Name:   actor.Name,
				X:      t.X,
				Y:      t.Y,
				Facing: component.DirDown.String(),
				Frame:  component.WalkIdleFrame,
				Player: ecs.Has(w, e, component.PlayerTagComponent.Kind()),
			}
			if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
				a.Facing = f.Dir.String()
				a.Row = int(f.Dir)
			}
			if anim, ok := ecs.Get(w, e, component.WalkAnimationComponent.Kind()); ok {
				a.Frame = anim.Frame
			}
			if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				a.Sprite = s.Key
			}
			if it, ok := ecs.Get(w, e, component.InteractableComponent.Kind()); ok {
				a.Talkable = true
				a.InRange = it.InRange
				if it.InRange {
					a.Prompt = it.Prompt
				}
			}
			snap.Actors = append(snap.Actors, a)
		})

	if m != nil && m.Phase() == PhaseConversing && m.dialogue != nil {
		if v, ok := m.dialogue.View(); ok {
			snap.Dialogue = &DialogueSnapshot{
				Speaker:      v.Speaker,
				Text:         v.Text,
				Portrait:     v.Portrait,
				HasPortrait:  v.HasPortrait,
				LineComplete: v.LineComplete,
				Line:         v.Line,
				TotalLines:   v.TotalLines,
			}
		}
	}
	return snap
}
