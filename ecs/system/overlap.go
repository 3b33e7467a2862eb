package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// OverlapFunc receives the overlapping pair in the order it was registered.
type OverlapFunc func(w *ecs.World, a, b ecs.Entity)

type overlapKey struct {
	a, b component.BodyKind
}

// OverlapSystem dispatches physics overlap events to registered callbacks.
type OverlapSystem struct {
	handlers map[overlapKey][]OverlapFunc
}

func NewOverlapSystem() *OverlapSystem {
	return &OverlapSystem{handlers: make(map[overlapKey][]OverlapFunc)}
}

// Register calls fn with (a, b) ordered as kindA, kindB whenever bodies of
// those kinds overlap.
func (s *OverlapSystem) Register(kindA, kindB component.BodyKind, fn OverlapFunc) {
	if fn == nil {
		return
	}
	key := overlapKey{kindA, kindB}
	s.handlers[key] = append(s.handlers[key], fn)
}

func (s *OverlapSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var keep []ecs.Event
	for _, evt := range w.Events().Drain() {
		ov, ok := evt.Data.(ecs.OverlapEvent)
		if evt.Type != ecs.EventOverlap || !ok {
			keep = append(keep, evt)
			continue
		}
		s.dispatch(w, ov)
	}
	for _, evt := range keep {
		w.Events().Push(evt)
	}
}

func (s *OverlapSystem) dispatch(w *ecs.World, ov ecs.OverlapEvent) {
	for _, fn := range s.handlers[overlapKey{ov.KindA, ov.KindB}] {
		if !ecs.IsAlive(w, ov.A) || !ecs.IsAlive(w, ov.B) {
			return
		}
		fn(w, ov.A, ov.B)
	}
	if ov.KindA == ov.KindB {
		return
	}
	for _, fn := range s.handlers[overlapKey{ov.KindB, ov.KindA}] {
		if !ecs.IsAlive(w, ov.A) || !ecs.IsAlive(w, ov.B) {
			return
		}
		fn(w, ov.B, ov.A)
	}
}
