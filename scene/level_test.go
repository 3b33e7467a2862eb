package scene

import (
	"os"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
)

func TestMain(m *testing.M) {
	entity.Headless()
	os.Exit(m.Run())
}

// enterLevel plays testdata/levels/<name>.json with the registry at score.
func enterLevel(t *testing.T, name string, score int) *LevelScene {
	t.Helper()
	t.Chdir("testdata")

	m := NewManager(MenuID)
	for _, id := range []string{MenuID, CompleteID, LevelID("level2")} {
		m.Register(id, func() Scene { return &fakeScene{} })
	}
	r := NewRegistry()
	r.SetScore(score)

	s := NewLevelScene(name, m, r, false)
	if err := s.Enter(); err != nil {
		t.Fatalf("Enter(%s): %v", name, err)
	}
	t.Cleanup(s.Exit)
	return s
}

func pushOverlap(w *ecs.World, a, b ecs.Entity, kindA, kindB component.BodyKind) {
	w.Events().Push(ecs.Event{Type: ecs.EventOverlap, Data: ecs.OverlapEvent{A: a, B: b, KindA: kindA, KindB: kindB}})
}

func TestEnterBuildsLevel(t *testing.T) {
	s := enterLevel(t, "mixed", 150)

	if !ecs.Has(s.world, s.player, component.PlayerTagComponent.Kind()) {
		t.Fatalf("player entity missing its tag")
	}
	if len(s.enemies) != 2 {
		t.Fatalf("enemies = %d, want 2 with the unknown type skipped", len(s.enemies))
	}
	for e := range s.enemies {
		en, ok := ecs.Get(s.world, e, component.EnemyComponent.Kind())
		if !ok || (en.Type != "slime" && en.Type != "flying") {
			t.Fatalf("unexpected enemy %+v", en)
		}
	}
	if len(s.powerUps) != 2 {
		t.Fatalf("power-ups = %d, want 2 with the unknown type skipped", len(s.powerUps))
	}
	if !ecs.Has(s.world, s.goal, component.GoalComponent.Kind()) {
		t.Fatalf("goal entity missing its goal component")
	}
	if s.entryScore != 150 {
		t.Fatalf("entry score = %d, want 150", s.entryScore)
	}
	if s.registry.CurrentLevel() != "mixed" || s.registry.LevelName() != "Mixed Spawns" {
		t.Fatalf("registry level = %q %q", s.registry.CurrentLevel(), s.registry.LevelName())
	}

	var coin ecs.Entity
	for e := range s.powerUps {
		if p, ok := ecs.Get(s.world, e, component.PowerUpComponent.Kind()); ok && p.Type == component.PowerUpCoin {
			coin = e
		}
	}
	pushOverlap(s.world, s.player, coin, component.BodyKindPlayer, component.BodyKindPowerUp)
	pushOverlap(s.world, s.goal, s.player, component.BodyKindGoal, component.BodyKindPlayer)
	s.overlaps.Update(s.world)

	if got := s.registry.Score(); got != 200 {
		t.Fatalf("score after coin = %d, want 200", got)
	}
	if ecs.IsAlive(s.world, coin) {
		t.Fatalf("collected coin still alive")
	}
	if !s.levelCompleting || s.manager.pending != LevelID("level2") {
		t.Fatalf("goal overlap: completing %v pending %q", s.levelCompleting, s.manager.pending)
	}
}

// slimeFixture is the slime level with handles on the player and the slime.
type slimeFixture struct {
	scene  *LevelScene
	enemy  *component.Enemy
	health *component.Health
	body   *component.PhysicsBody
}

func newSlimeFixture(t *testing.T, px, py float64) *slimeFixture {
	t.Helper()
	s := enterLevel(t, "slime", 0)
	if len(s.enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(s.enemies))
	}
	var slime ecs.Entity
	for e := range s.enemies {
		slime = e
	}

	tr, _ := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	tr.X, tr.Y = px, py
	f := &slimeFixture{scene: s}
	f.enemy, _ = ecs.Get(s.world, slime, component.EnemyComponent.Kind())
	f.health, _ = ecs.Get(s.world, s.player, component.HealthComponent.Kind())
	f.body, _ = ecs.Get(s.world, s.player, component.PhysicsBodyComponent.Kind())
	return f
}

// step runs one physics tick and dispatches its overlaps.
func (f *slimeFixture) step() {
	f.scene.physics.Update(f.scene.world)
	f.scene.overlaps.Update(f.scene.world)
}

func TestFallingOntoEnemyStomps(t *testing.T) {
	f := newSlimeFixture(t, 300, 150)

	for i := 0; i < 120 && !f.enemy.Defeated; i++ {
		f.step()
	}
	if !f.enemy.Defeated {
		t.Fatalf("player never landed on the slime")
	}

	if got := f.scene.registry.Score(); got != stompScore {
		t.Fatalf("score = %d, want %d", got, stompScore)
	}
	if v := f.body.Body.Velocity(); v.Y != stompBounce {
		t.Fatalf("velocity after stomp = %v, want vy %v", v, stompBounce)
	}
	if f.health.Current != 3 {
		t.Fatalf("stomp cost the player health: %d", f.health.Current)
	}
	if n := len(f.scene.world.Query(component.HitFreezeRequestComponent.Kind())); n != 1 {
		t.Fatalf("stomp queued %d hit freezes, want 1", n)
	}

	// The squashed slime no longer reports overlaps.
	for i := 0; i < 30; i++ {
		f.step()
	}
	if f.health.Current != 3 || f.scene.registry.Score() != stompScore {
		t.Fatalf("defeated slime still collides: health %d score %d", f.health.Current, f.scene.registry.Score())
	}
}

func TestWalkingIntoEnemyHurts(t *testing.T) {
	f := newSlimeFixture(t, 100, 233)

	for i := 0; i < 120 && f.health.Current == 3; i++ {
		f.step()
		if f.health.Current == 3 {
			f.body.Body.SetVelocity(200, f.body.Body.Velocity().Y)
		}
	}
	if f.health.Current != 2 {
		t.Fatalf("health = %d, want 2 after walking into the slime", f.health.Current)
	}

	c, _ := ecs.Get(f.scene.world, f.scene.player, component.ContactsComponent.Kind())
	if !c.Grounded {
		t.Fatalf("player left the ground before reaching the slime")
	}
	if f.enemy.Defeated || f.scene.registry.Score() != 0 {
		t.Fatalf("walk-in counted as a stomp: defeated %v score %d", f.enemy.Defeated, f.scene.registry.Score())
	}
	if v := f.body.Body.Velocity(); v.X != -knockbackX || v.Y != knockbackY {
		t.Fatalf("knockback = %v, want (%v, %v)", v, -knockbackX, knockbackY)
	}
}
