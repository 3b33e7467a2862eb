package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestTTLDestroysAtZero(t *testing.T) {
	w := ecs.NewWorld()
	short := ecs.CreateEntity(w)
	long := ecs.CreateEntity(w)
	_ = ecs.Add(w, short, component.TTLComponent.Kind(), &component.TTL{Frames: 1})
	_ = ecs.Add(w, long, component.TTLComponent.Kind(), &component.TTL{Frames: 3})

	sys := NewTTLSystem()
	sys.Update(w)
	if ecs.IsAlive(w, short) {
		t.Fatalf("ttl 1 survived one tick")
	}
	sys.Update(w)
	if !ecs.IsAlive(w, long) {
		t.Fatalf("ttl 3 destroyed after two ticks")
	}
	sys.Update(w)
	if ecs.IsAlive(w, long) {
		t.Fatalf("ttl 3 survived three ticks")
	}
}

func TestInvulnerability(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sys := NewInvulnerableSystem()

	GrantInvulnerability(w, e, 2, 4)
	GrantInvulnerability(w, e, 1, 0)
	if inv, _ := ecs.Get(w, e, component.InvulnerableComponent.Kind()); inv.Frames != 2 || inv.BlinkPeriod != 4 {
		t.Fatalf("shorter grant must not shrink invulnerability: %+v", inv)
	}

	sys.Update(w)
	if !IsInvulnerable(w, e) {
		t.Fatalf("lost invulnerability early")
	}
	sys.Update(w)
	if IsInvulnerable(w, e) {
		t.Fatalf("invulnerability not removed at zero")
	}
}

func TestBlinkHidden(t *testing.T) {
	tests := []struct {
		name  string
		inv   *component.Invulnerable
		frame int
		want  bool
	}{
		{"nil", nil, 5, false},
		{"no_blink", &component.Invulnerable{Frames: 10}, 5, false},
		{"on_phase", &component.Invulnerable{Frames: 10, BlinkPeriod: 4}, 3, false},
		{"off_phase", &component.Invulnerable{Frames: 10, BlinkPeriod: 4}, 5, true},
		{"expired", &component.Invulnerable{BlinkPeriod: 4}, 5, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BlinkHidden(tc.inv, tc.frame); got != tc.want {
				t.Fatalf("BlinkHidden = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCameraFollowsAndClamps(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 1000, Y: 400})

	cam := ecs.CreateEntity(w)
	_ = ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", LerpX: 0.1, LerpY: 0.1})
	_ = ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{})

	bounds := ecs.CreateEntity(w)
	_ = ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 3200, Height: 736})

	sys := NewCameraSystem()
	sys.Update(w)
	ct, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	if ct.X != 1000-common.BaseWidth/2 || ct.Y != 736-common.BaseHeight {
		t.Fatalf("first frame should snap, got (%v,%v)", ct.X, ct.Y)
	}

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.X += 100
	sys.Update(w)
	if want := 1000 - common.BaseWidth/2 + 10.0; ct.X != want {
		t.Fatalf("lerped x = %v, want %v", ct.X, want)
	}

	pt.X = 0
	for i := 0; i < 200; i++ {
		sys.Update(w)
	}
	if ct.X != 0 {
		t.Fatalf("camera left the level: x=%v", ct.X)
	}
}

func TestPlayerControllerJump(t *testing.T) {
	tests := []struct {
		name      string
		grounded  bool
		coyote    int
		knockback int
		wantJump  bool
	}{
		{"grounded", true, 0, 0, true},
		{"coyote", false, 3, 0, true},
		{"airborne", false, 0, 0, false},
		{"knockback", true, 0, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			body := cp.NewBody(1, cp.INFINITY)
			_ = ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 200, JumpSpeed: 480, CoyoteTimer: tc.coyote, KnockbackTimer: tc.knockback})
			_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: -1, JumpPressed: true})
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body})
			_ = ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{Grounded: tc.grounded})

			jumps := 0
			sys := NewPlayerControllerSystem()
			sys.OnJump = func(*ecs.World, ecs.Entity) { jumps++ }
			sys.Update(w)

			v := body.Velocity()
			if (v.Y == -480) != tc.wantJump || (jumps == 1) != tc.wantJump {
				t.Fatalf("jump = (vy %v, callbacks %d), want jump %v", v.Y, jumps, tc.wantJump)
			}
			if tc.knockback == 0 && v.X != -200 {
				t.Fatalf("vx = %v, want -200", v.X)
			}
			if tc.knockback > 0 && v.X != 0 {
				t.Fatalf("knockback should lock vx, got %v", v.X)
			}
		})
	}
}

type fakeHUDSource struct {
	score int
	level string
}

func (f fakeHUDSource) Score() int        { return f.score }
func (f fakeHUDSource) LevelName() string { return f.level }

func TestHUDReadsState(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.HealthComponent.Kind(), &component.Health{Initial: 3, Current: 2, Max: 5})
	hudEntity := ecs.CreateEntity(w)
	_ = ecs.Add(w, hudEntity, component.HUDComponent.Kind(), &component.HUD{})

	NewHUDSystem(fakeHUDSource{score: 150, level: "Green Hills"}).Update(w)

	hud, _ := ecs.Get(w, hudEntity, component.HUDComponent.Kind())
	if got, want := HUDText(hud), "Score: 150   Level: Green Hills   Health: 2/5"; got != want {
		t.Fatalf("HUDText = %q, want %q", got, want)
	}
}

func TestHitFreezeKeepsLongestRequest(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewHitFreezeSystem()

	RequestHitFreeze(w, 2)
	RequestHitFreeze(w, 3)
	RequestHitFreeze(w, 0)
	sys.Update(w)

	if n := len(w.Query(component.HitFreezeRequestComponent.Kind())); n != 0 {
		t.Fatalf("%d requests left after update", n)
	}
	held := 0
	for sys.Hold() {
		held++
	}
	if held != 3 {
		t.Fatalf("held %d ticks, want 3", held)
	}
}
