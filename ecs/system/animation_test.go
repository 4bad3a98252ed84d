package system

import (
	"testing"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

func TestAnimationCycle(t *testing.T) {
	cases := []struct {
		name      string
		moving    bool
		frames    int
		dt        float64
		wantFrame int
	}{
		{"idle rests on middle frame", false, 3, 0.2, component.WalkIdleFrame},
		{"one tick", true, 1, 0.15, 2},
		{"wraps", true, 2, 0.15, 0},
		{"under a tick", true, 1, 0.1, 1},
		{"long frame steps twice", true, 1, 0.31, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := addPlayer(t, w, 0, 0, false)
			anim := get(t, w, p, component.WalkAnimationComponent.Kind())
			anim.Moving = c.moving
			sys := NewAnimationSystem()
			for i := 0; i < c.frames; i++ {
				stepFrame(w, c.dt, sys)
			}
			if anim.Frame != c.wantFrame {
				t.Fatalf("expected frame %d, got %d", c.wantFrame, anim.Frame)
			}
		})
	}
}
