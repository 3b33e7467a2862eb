package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type HoverSystem struct{}

func NewHoverSystem() *HoverSystem { return &HoverSystem{} }

func (s *HoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.HoverComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hover *component.Hover, t *component.Transform) {
		if !hover.Initialized {
			hover.BaseY = t.Y
			hover.Initialized = true
			if hover.Amplitude == 0 {
				hover.Amplitude = 4
			}
			if hover.Speed == 0 {
				hover.Speed = 0.08
			}
		}

		hover.Phase += hover.Speed
		t.Y = hover.BaseY + math.Sin(hover.Phase)*hover.Amplitude
	})
}
