package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type colliderRole int

const (
	colliderBody colliderRole = iota
	colliderGround
	colliderHit
)

// debugCollider is one collider as the -debug overlay draws it.
type debugCollider struct {
	entity   ecs.Entity
	kind     component.BodyKind
	role     colliderRole
	disabled bool
	bb       cp.BB
}

var (
	debugBoundsColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x90}
	debugKillColor   = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xc0}
)

// debugColliders lists the box colliders owned by entities, sorted by
// entity so the overlay draws in a stable order. Level walls are left out;
// the overlay draws LevelBounds instead.
func (ps *PhysicsSystem) debugColliders() []debugCollider {
	if ps == nil {
		return nil
	}
	var out []debugCollider
	for e, info := range ps.entities {
		if info.mainShape == nil {
			continue
		}
		for _, shape := range info.shapes {
			role := colliderBody
			switch shape {
			case info.groundShape:
				role = colliderGround
			case info.hitShape:
				role = colliderHit
			}
			out = append(out, debugCollider{
				entity:   e,
				kind:     info.kind,
				role:     role,
				disabled: info.disabled && role == colliderHit,
				bb:       shape.CacheBB(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].entity != out[j].entity {
			return out[i].entity < out[j].entity
		}
		return out[i].role < out[j].role
	})
	return out
}

func debugColor(kind component.BodyKind, role colliderRole, disabled bool) color.NRGBA {
	switch {
	case disabled:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
	case role == colliderGround:
		return color.NRGBA{R: 0x30, G: 0xe0, B: 0xe0, A: 0xd0}
	case role == colliderHit:
		return color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xd0}
	}
	switch kind {
	case component.BodyKindPlayer:
		return color.NRGBA{R: 0x40, G: 0x80, B: 0xff, A: 0xe0}
	case component.BodyKindEnemy:
		return color.NRGBA{R: 0xff, G: 0x90, B: 0x20, A: 0xe0}
	case component.BodyKindPowerUp:
		return color.NRGBA{R: 0xff, G: 0xe0, B: 0x20, A: 0xe0}
	case component.BodyKindGoal:
		return color.NRGBA{R: 0xe0, G: 0x40, B: 0xe0, A: 0xe0}
	default:
		return color.NRGBA{R: 0x30, G: 0xc0, B: 0x30, A: 0xa0}
	}
}

// DrawPhysicsDebug outlines every collider coloured by body kind, the
// level bounds and the kill line below the level.
func DrawPhysicsDebug(ps *PhysicsSystem, w *ecs.World, screen *ebiten.Image) {
	if ps == nil || w == nil || screen == nil {
		return
	}
	cam, _ := ecs.First(w, component.CameraComponent.Kind())
	camX, camY, zoom := cameraView(w, cam)
	toScreen := func(x, y float64) (float32, float32) {
		return float32((x - camX) * zoom), float32((y - camY) * zoom)
	}

	for _, c := range ps.debugColliders() {
		x, y := toScreen(c.bb.L, c.bb.B)
		wpx := float32((c.bb.R - c.bb.L) * zoom)
		hpx := float32((c.bb.T - c.bb.B) * zoom)
		vector.StrokeRect(screen, x, y, wpx, hpx, 1, debugColor(c.kind, c.role, c.disabled), false)
	}

	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	b, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	x, y := toScreen(0, 0)
	vector.StrokeRect(screen, x, y, float32(b.Width*zoom), float32(b.Height*zoom), 2, debugBoundsColor, false)
	if b.KillY > 0 {
		x0, ky := toScreen(0, b.KillY)
		x1, _ := toScreen(b.Width, b.KillY)
		vector.StrokeLine(screen, x0, ky, x1, ky, 2, debugKillColor, false)
	}
}

// DrawPlayerDebug prints the player's contact and velocity state.
func DrawPlayerDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	grounded := false
	wall := component.WallNone
	if c, ok := ecs.Get(w, player, component.ContactsComponent.Kind()); ok {
		grounded = c.Grounded || c.GroundGrace > 0
		wall = c.Wall
	}
	vx, vy := 0.0, 0.0
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		v := body.Body.Velocity()
		vx, vy = v.X, v.Y
	}
	text := fmt.Sprintf("Grounded: %v\nWall: %d\nVel: %.0f, %.0f\nEntities: %d", grounded, wall, vx, vy, len(ecs.Entities(w)))
	ebitenutil.DebugPrintAt(screen, text, 10, common.BaseHeight-80)
}
