package system

import (
	"math"
	"strings"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type TweenSystem struct{}

func NewTweenSystem() *TweenSystem { return &TweenSystem{} }

func (s *TweenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TweenComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tw *component.Tween, t *component.Transform) {
		if tw.Done {
			return
		}
		axis := &t.Y
		if tw.Property == component.TweenX {
			axis = &t.X
		}
		if !tw.Started {
			tw.From = *axis
			tw.To = tw.From + tw.By
			tw.Started = true
		}
		*axis = stepTween(tw)
	})
}

// stepTween advances tw by one frame and returns the new axis value.
func stepTween(tw *component.Tween) float64 {
	duration := tw.DurationFrames
	if duration <= 0 {
		duration = 1
	}

	tw.Frame++
	p := float64(tw.Frame) / float64(duration)
	if p > 1 {
		p = 1
	}
	if tw.Reversing {
		p = 1 - p
	}
	value := tw.From + (tw.To-tw.From)*Ease(tw.Ease, p)

	if tw.Frame < duration {
		return value
	}
	tw.Frame = 0
	if tw.Yoyo && !tw.Reversing {
		tw.Reversing = true
		return value
	}
	tw.Reversing = false
	switch {
	case tw.Repeat < 0:
	case tw.Repeat > 0:
		tw.Repeat--
	default:
		tw.Done = true
	}
	return value
}

// Ease maps linear progress p in [0,1] through the named curve.
func Ease(name string, p float64) float64 {
	switch strings.ToLower(name) {
	case component.EaseSineInOut, "sine.easeinout":
		return -(math.Cos(math.Pi*p) - 1) / 2
	case "sine.in":
		return 1 - math.Cos(p*math.Pi/2)
	case "sine.out":
		return math.Sin(p * math.Pi / 2)
	case "quad.inout":
		if p < 0.5 {
			return 2 * p * p
		}
		return 1 - math.Pow(-2*p+2, 2)/2
	default:
		return p
	}
}
