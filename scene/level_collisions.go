package scene

import (
	"log"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
)

const (
	stompMargin   = 10.0
	stompBounce   = -300.0
	stompScore    = 100
	stompFreeze   = 4
	knockbackX    = 200.0
	knockbackY    = -200.0
	hurtBlinkRate = 4
)

// handlePlayerEnemyCollision resolves a player touching an enemy: a stomp
// from above damages the enemy, anything else hurts the player.
func (s *LevelScene) handlePlayerEnemyCollision(w *ecs.World, player, enemy ecs.Entity) {
	e, ok := ecs.Get(w, enemy, component.EnemyComponent.Kind())
	if !ok || e.Defeated {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	et, ok := ecs.Get(w, enemy, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return
	}

	vel := pb.Body.Velocity()
	grounded := false
	if c, ok := ecs.Get(w, player, component.ContactsComponent.Kind()); ok {
		grounded = c.Grounded
	}

	if vel.Y > 0 && pt.Y < et.Y-stompMargin && !grounded {
		damageEnemy(w, enemy, e)
		pb.Body.SetVelocity(vel.X, stompBounce)
		s.registry.AddScore(stompScore)
		system.RequestHitFreeze(w, stompFreeze)
		playSound(w, player, "stomp")
		return
	}

	if system.IsInvulnerable(w, player) {
		return
	}
	hurtPlayer(w, player, pt.X < et.X)
}

func damageEnemy(w *ecs.World, enemy ecs.Entity, e *component.Enemy) {
	if h, ok := ecs.Get(w, enemy, component.HealthComponent.Kind()); ok {
		h.Current--
		if h.Current > 0 {
			return
		}
	}

	e.Defeated = true
	if sprite, ok := ecs.Get(w, enemy, component.SpriteComponent.Kind()); ok && e.SquashImage != nil {
		sprite.Image = e.SquashImage
	}
	if body, ok := ecs.Get(w, enemy, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocity(0, body.Body.Velocity().Y)
	}
	frames := e.SquashFrames
	if frames <= 0 {
		frames = 1
	}
	_ = ecs.Add(w, enemy, component.TTLComponent.Kind(), &component.TTL{Frames: frames})
}

func hurtPlayer(w *ecs.World, player ecs.Entity, leftOfEnemy bool) {
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		h.Current--
		if h.Current <= 0 {
			h.Current = 0
			p.Dead = true
		}
	}

	dir := 1.0
	if leftOfEnemy {
		dir = -1
	}
	if pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetVelocity(dir*knockbackX, knockbackY)
	}
	p.KnockbackTimer = p.KnockbackFrames
	system.GrantInvulnerability(w, player, p.InvincibleFrames, hurtBlinkRate)
	playSound(w, player, "hurt")
}

// handlePlayerPowerUpCollision collects a power-up once and removes it.
func (s *LevelScene) handlePlayerPowerUpCollision(w *ecs.World, player, powerUp ecs.Entity) {
	p, ok := ecs.Get(w, powerUp, component.PowerUpComponent.Kind())
	if !ok || p.Collected {
		return
	}
	p.Collected = true
	s.collect(w, player, p)
	ecs.DestroyEntity(w, powerUp)
	delete(s.powerUps, powerUp)
}

// collect applies a power-up's effect to the player.
func (s *LevelScene) collect(w *ecs.World, player ecs.Entity, p *component.PowerUp) {
	if p.Score != 0 {
		s.registry.AddScore(p.Score)
	}
	if p.Heal > 0 {
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			h.Current += p.Heal
			if h.Max > 0 && h.Current > h.Max {
				h.Current = h.Max
			}
		}
	}
	if p.InvincibleFrames > 0 {
		system.GrantInvulnerability(w, player, p.InvincibleFrames, hurtBlinkRate)
	}
	sound := p.Sound
	if sound == "" {
		sound = "powerup"
	}
	playSound(w, player, sound)
}

// handleGoalReached moves on to the next level, or the completion screen
// after the last one. It runs once per level.
func (s *LevelScene) handleGoalReached(w *ecs.World, _, goal ecs.Entity) {
	if s.levelCompleting {
		return
	}
	s.levelCompleting = true

	next := ""
	if g, ok := ecs.Get(w, goal, component.GoalComponent.Kind()); ok {
		g.Reached = true
		next = g.Next
	}

	if next != "" {
		s.registry.AdvanceLevel(next)
		err := s.manager.Start(LevelID(next))
		if err == nil {
			return
		}
		log.Printf("level %s: next level %q: %v", s.name, next, err)
	}
	if err := s.manager.Start(CompleteID); err != nil {
		log.Printf("level %s: %v", s.name, err)
	}
}

func playSound(w *ecs.World, e ecs.Entity, name string) {
	if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		a.Play(name)
	}
}
