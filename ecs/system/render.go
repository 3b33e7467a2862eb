package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type RenderSystem struct {
	camEntity ecs.Entity
	frame     int

	// Debug draws collider outlines over the world.
	Debug   bool
	Physics *PhysicsSystem
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.frame++

	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY, zoom := cameraView(w, r.camEntity)

	for _, e := range r.drawOrder(w) {
		if e == r.camEntity {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil || s.Hidden {
			continue
		}
		if inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind()); ok && BlinkHidden(inv, r.frame) {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FacingLeft {
			sx = -sx
			op.GeoM.Translate(float64(-img.Bounds().Dx())+2*s.OriginX, 0)
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		if ecs.Has(w, e, component.ScreenSpaceComponent.Kind()) {
			op.GeoM.Translate(t.X, t.Y)
		} else {
			op.GeoM.Scale(zoom, zoom)
			op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)
		}

		screen.DrawImage(img, op)
	}

	if r.Debug {
		DrawPhysicsDebug(r.Physics, w, screen)
		DrawPlayerDebug(w, screen)
	}
}

// cameraView returns the world offset and zoom of the camera entity, or
// the identity view when there is none.
func cameraView(w *ecs.World, cam ecs.Entity) (x, y, zoom float64) {
	zoom = 1
	if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return x, y, zoom
}

// drawOrder returns sprite entities sorted by layer, then by entity.
func (r *RenderSystem) drawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

// BlinkHidden reports whether an invulnerable sprite is in the off half of
// its blink cycle.
func BlinkHidden(inv *component.Invulnerable, frame int) bool {
	if inv == nil || inv.BlinkPeriod <= 0 || inv.Frames <= 0 {
		return false
	}
	return (frame/inv.BlinkPeriod)%2 == 1
}
