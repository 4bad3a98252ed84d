package ecs

import "github.com/milk9111/townfolk/ecs/component"

// Kind is satisfied by every component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
	Name() string
	Valid() bool
}

// World owns entities, component stores, and the frame clock.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet

	delta float64
	frame uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	id := int(e.id())
	for _, s := range w.stores {
		s.Remove(id)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// First returns the lowest-slot live entity holding kind.
func (w *World) First(kind Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Query returns live entities holding every kind, in slot order.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, len(kinds))
	for i, k := range kinds {
		sets[i] = w.stores[k.ID()]
	}
	ids := intersect(sets...)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Tick advances the frame clock. Systems read the step with Delta.
func (w *World) Tick(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.frame++
}

// Delta returns the seconds elapsed for the current frame.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Frame returns the number of Tick calls so far.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func (w *World) store(kind Kind, create bool) *SparseSet {
	s := w.stores[kind.ID()]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[kind.ID()] = s
	}
	return s
}
