package system

import (
	"math"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	viewW        float64
	viewH        float64
	snapped      bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{viewW: common.BaseWidth, viewH: common.BaseHeight}
}

// SetViewport sets the visible area in world pixels at zoom 1.
func (cs *CameraSystem) SetViewport(w, h float64) {
	cs.viewW, cs.viewH = w, h
}

// Update moves the camera's top-left corner toward the target's center by
// the camera lerp factors, clamped to the level bounds.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.snapped = false
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := camComp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW, viewH := cs.viewW/zoom, cs.viewH/zoom

	desiredX := target.X - viewW/2
	desiredY := target.Y - viewH/2

	lx, ly := camComp.LerpX, camComp.LerpY
	if !cs.snapped {
		lx, ly = 1, 1
		cs.snapped = true
	}
	x := common.Lerp(camTransform.X, desiredX, lx)
	y := common.Lerp(camTransform.Y, desiredY, ly)

	if boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind()); ok {
			x = common.Clamp(x, 0, b.Width-viewW)
			y = common.Clamp(y, 0, b.Height-viewH)
		}
	}
	if camComp.RoundPx {
		x, y = math.Round(x), math.Round(y)
	}
	camTransform.X, camTransform.Y = x, y
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
