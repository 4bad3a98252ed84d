package ecs

import (
	"testing"

	"github.com/milk9111/townfolk/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
			}
		})
	}
}

func TestEntitySlotReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	first := CreateEntity(w)
	if err := Add(w, first, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !DestroyEntity(w, first) {
		t.Fatalf("destroy should succeed")
	}
	if DestroyEntity(w, first) {
		t.Fatalf("second destroy should be a no-op")
	}

	second := CreateEntity(w)
	if second.id() != first.id() {
		t.Fatalf("expected slot reuse, got %v and %v", first, second)
	}
	if second == first {
		t.Fatalf("reused slot must carry a new generation")
	}
	if Has[int](w, second, h.Kind()) {
		t.Fatalf("components must not survive slot reuse")
	}
	if err := Add(w, first, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestQueryOrderAndFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	ents := []Entity{CreateEntity(w), CreateEntity(w), CreateEntity(w)}
	for i := len(ents) - 1; i >= 0; i-- {
		if err := Add(w, ents[i], h.Kind(), intPtr(i)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got := w.Query(h.Kind())
	if len(got) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(got))
	}
	for i := range got {
		if got[i] != ents[i] {
			t.Fatalf("expected slot order, got %v", got)
		}
	}

	first, ok := w.First(h.Kind())
	if !ok || first != ents[0] {
		t.Fatalf("expected first=%v, got %v ok=%v", ents[0], first, ok)
	}

	if _, ok := w.First(component.NewComponentKind[string]()); ok {
		t.Fatalf("expected no entity for unused kind")
	}
}

func TestTickClampsNegativeDelta(t *testing.T) {
	w := NewWorld()
	w.Tick(0.5)
	w.Tick(-1)
	if w.Delta() != 0 {
		t.Fatalf("expected negative delta to clamp to 0, got %v", w.Delta())
	}
	if w.Frame() != 2 {
		t.Fatalf("expected frame 2, got %d", w.Frame())
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEachIntersections(t *testing.T) {
	actorKind := component.ActorComponent.Kind()
	transformKind := component.TransformComponent.Kind()
	velocityKind := component.VelocityComponent.Kind()
	facingKind := component.FacingComponent.Kind()

	w := NewWorld()
	player := CreateEntity(w)
	npc := CreateEntity(w)
	ground := CreateEntity(w)
	gone := CreateEntity(w)

	for _, e := range []Entity{player, npc, gone} {
		if err := Add(w, e, actorKind, &component.Actor{Name: "a"}); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, transformKind, &component.Transform{}); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, facingKind, &component.Facing{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, player, velocityKind, &component.Velocity{}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, gone, velocityKind, &component.Velocity{}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, ground, transformKind, &component.Transform{}); err != nil {
		t.Fatal(err)
	}
	if !DestroyEntity(w, gone) {
		t.Fatalf("destroy failed")
	}

	cases := []struct {
		name string
		run  func(fn func(Entity))
		want []Entity
	}{
		{
			name: "three stores",
			run: func(fn func(Entity)) {
				ForEach3(w, actorKind, transformKind, facingKind, func(e Entity, _ *component.Actor, _ *component.Transform, _ *component.Facing) { fn(e) })
			},
			want: []Entity{player, npc},
		},
		{
			name: "four stores",
			run: func(fn func(Entity)) {
				ForEach4(w, actorKind, transformKind, velocityKind, facingKind, func(e Entity, _ *component.Actor, _ *component.Transform, _ *component.Velocity, _ *component.Facing) {
					fn(e)
				})
			},
			want: []Entity{player},
		},
		{
			name: "missing store",
			run: func(fn func(Entity)) {
				ForEach3(w, actorKind, transformKind, component.DialogueScriptComponent.Kind(), func(e Entity, _ *component.Actor, _ *component.Transform, _ *component.DialogueScript) { fn(e) })
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []Entity
			tc.run(func(e Entity) { got = append(got, e) })
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			set := toSet(got)
			for _, e := range tc.want {
				if _, ok := set[e]; !ok {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}
