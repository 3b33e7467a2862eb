package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// InvulnerableSystem counts invulnerability down and removes it at zero.
// Frames == 0 is indefinite and left alone.
type InvulnerableSystem struct{}

func NewInvulnerableSystem() *InvulnerableSystem { return &InvulnerableSystem{} }

func (s *InvulnerableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}

// IsInvulnerable reports whether e currently ignores damage.
func IsInvulnerable(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.InvulnerableComponent.Kind())
}

// GrantInvulnerability adds or extends invulnerability on e.
func GrantInvulnerability(w *ecs.World, e ecs.Entity, frames, blinkPeriod int) {
	if frames <= 0 {
		return
	}
	if inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind()); ok {
		if frames > inv.Frames {
			inv.Frames = frames
		}
		if blinkPeriod > 0 {
			inv.BlinkPeriod = blinkPeriod
		}
		return
	}
	_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: frames, BlinkPeriod: blinkPeriod})
}
