package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// HitFreezeSystem collects the freeze requests raised during a frame and
// keeps the longest one. The owning scene calls Hold before stepping.
type HitFreezeSystem struct {
	remaining int
}

func NewHitFreezeSystem() *HitFreezeSystem {
	return &HitFreezeSystem{}
}

func (s *HitFreezeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	maxFrames := 0
	for _, e := range w.Query(component.HitFreezeRequestComponent.Kind()) {
		if req, ok := ecs.Get(w, e, component.HitFreezeRequestComponent.Kind()); ok && req.Frames > maxFrames {
			maxFrames = req.Frames
		}
		ecs.DestroyEntity(w, e)
	}
	if maxFrames > s.remaining {
		s.remaining = maxFrames
	}
}

// Hold reports whether this tick should be skipped and counts it down.
func (s *HitFreezeSystem) Hold() bool {
	if s.remaining <= 0 {
		return false
	}
	s.remaining--
	return true
}

// RequestHitFreeze queues a freeze picked up by HitFreezeSystem.
func RequestHitFreeze(w *ecs.World, frames int) {
	if w == nil || frames <= 0 {
		return
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.HitFreezeRequestComponent.Kind(), &component.HitFreezeRequest{Frames: frames})
}
