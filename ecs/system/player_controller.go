package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	defaultMoveSpeed = 200.0
	defaultJumpSpeed = 480.0
)

type PlayerControllerSystem struct {
	// OnJump fires when a jump starts.
	OnJump func(w *ecs.World, e ecs.Entity)
}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || player.Dead {
			continue
		}

		moveSpeed := player.MoveSpeed
		if moveSpeed <= 0 {
			moveSpeed = defaultMoveSpeed
		}
		jumpSpeed := player.JumpSpeed
		if jumpSpeed <= 0 {
			jumpSpeed = defaultJumpSpeed
		}

		grounded := false
		if c, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
			grounded = c.Grounded
		}
		if grounded {
			player.CoyoteTimer = player.CoyoteFrames
		} else if player.CoyoteTimer > 0 {
			player.CoyoteTimer--
		}

		vel := bodyComp.Body.Velocity()

		if player.KnockbackTimer > 0 {
			player.KnockbackTimer--
		} else {
			vel.X = input.MoveX * moveSpeed
			if input.MoveX < 0 {
				player.FacingLeft = true
			} else if input.MoveX > 0 {
				player.FacingLeft = false
			}
		}

		if input.JumpPressed && (grounded || player.CoyoteTimer > 0) && player.KnockbackTimer == 0 {
			vel.Y = -jumpSpeed
			player.CoyoteTimer = 0
			if p.OnJump != nil {
				p.OnJump(w, e)
			}
		}
		bodyComp.Body.SetVelocityVector(vel)

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = player.FacingLeft
		}
	}
}
