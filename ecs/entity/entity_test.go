package entity

import (
	"errors"
	"os"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

func TestMain(m *testing.M) {
	Headless()
	os.Exit(m.Run())
}

func TestBuildPrefabs(t *testing.T) {
	tests := []struct {
		prefab string
		check  func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{"player.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
			if !ok || p.MoveSpeed != 200 || p.JumpSpeed != 480 {
				t.Fatalf("player component = %+v", p)
			}
			h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
			if h == nil || h.Current != 3 || h.Max != 5 {
				t.Fatalf("health = %+v", h)
			}
			a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
			if a == nil || !a.Play("stomp") {
				t.Fatalf("player audio missing stomp clip: %+v", a)
			}
			if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !ecs.Has(w, e, component.ContactsComponent.Kind()) {
				t.Fatalf("player missing tag or contacts")
			}
		}},
		{"slime.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			ai, _ := ecs.Get(w, e, component.AIScriptComponent.Kind())
			if ai == nil || ai.Path != "slime.tengo" || ai.Dir != -1 {
				t.Fatalf("slime ai = %+v", ai)
			}
			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if body == nil || body.Kind != component.BodyKindEnemy || body.Mass != 1 {
				t.Fatalf("slime body = %+v", body)
			}
		}},
		{"flying.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			gs, _ := ecs.Get(w, e, component.GravityScaleComponent.Kind())
			if gs == nil || gs.Scale != 0 {
				t.Fatalf("flying gravity scale = %+v", gs)
			}
		}},
		{"coin.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			p, _ := ecs.Get(w, e, component.PowerUpComponent.Kind())
			if p == nil || p.Score != 50 || p.Sound != "coin" {
				t.Fatalf("coin = %+v", p)
			}
			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if body == nil || body.Kind != component.BodyKindPowerUp || !body.Static {
				t.Fatalf("coin body = %+v", body)
			}
		}},
		{"goal.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			tw, _ := ecs.Get(w, e, component.TweenComponent.Kind())
			if tw == nil || tw.By != -20 || tw.DurationFrames != 60 || !tw.Yoyo || tw.Repeat != -1 || tw.Property != component.TweenY {
				t.Fatalf("goal tween = %+v", tw)
			}
		}},
		{"camera.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			c, _ := ecs.Get(w, e, component.CameraComponent.Kind())
			if c == nil || c.LerpX != 0.1 || c.LerpY != 0.1 || c.TargetName != "player" {
				t.Fatalf("camera = %+v", c)
			}
		}},
		{"hud.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			h, _ := ecs.Get(w, e, component.HUDComponent.Kind())
			if h == nil || h.Color.A != 255 {
				t.Fatalf("hud = %+v", h)
			}
			if !ecs.Has(w, e, component.SpriteComponent.Kind()) || !ecs.Has(w, e, component.ScreenSpaceComponent.Kind()) {
				t.Fatalf("hud missing sprite or screen space")
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, tc.prefab)
			if err != nil {
				t.Fatalf("BuildEntity(%q): %v", tc.prefab, err)
			}
			tc.check(t, w, e)
		})
	}
}

func TestBuildEntityFailureLeavesNoEntity(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(w, "does_not_exist.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}

	orig := loadImage
	loadImage = func(string) (*ebiten.Image, error) { return nil, errors.New("boom") }
	defer func() { loadImage = orig }()

	if _, err := BuildEntity(w, "slime.yaml"); err == nil {
		t.Fatalf("expected error when the sprite cannot load")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("failed build left %d entities behind", n)
	}
}

func TestSpawnersByType(t *testing.T) {
	tests := []struct {
		name    string
		spawn   func(w *ecs.World) (ecs.Entity, error)
		unknown bool
	}{
		{"slime", func(w *ecs.World) (ecs.Entity, error) { return NewEnemyAt(w, "slime", 10, 20) }, false},
		{"flying_mixed_case", func(w *ecs.World) (ecs.Entity, error) { return NewEnemyAt(w, "Flying", 10, 20) }, false},
		{"bat", func(w *ecs.World) (ecs.Entity, error) { return NewEnemyAt(w, "bat", 10, 20) }, true},
		{"heart", func(w *ecs.World) (ecs.Entity, error) { return NewPowerUpAt(w, "heart", 10, 20) }, false},
		{"star", func(w *ecs.World) (ecs.Entity, error) { return NewPowerUpAt(w, "star", 10, 20) }, false},
		{"gem", func(w *ecs.World) (ecs.Entity, error) { return NewPowerUpAt(w, "gem", 10, 20) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := tc.spawn(w)
			if tc.unknown {
				if !errors.Is(err, ErrUnknownType) {
					t.Fatalf("expected ErrUnknownType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr == nil || tr.X != 10 || tr.Y != 20 {
				t.Fatalf("transform = %+v, want (10,20)", tr)
			}
		})
	}
}

func TestNewGoalAt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewGoalAt(w, 3100, 620, "level2")
	if err != nil {
		t.Fatal(err)
	}
	goal, _ := ecs.Get(w, e, component.GoalComponent.Kind())
	if goal.Next != "level2" || goal.Reached {
		t.Fatalf("goal = %+v", goal)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 3100 || tr.Y != 620 {
		t.Fatalf("goal transform = %+v", tr)
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.Load("level1")
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatal(err)
	}

	wantTiles := 0
	for _, p := range lvl.Platforms {
		wantTiles += p.W * p.H
	}
	if got := len(w.Query(component.PlatformTagComponent.Kind())); got != wantTiles {
		t.Fatalf("tiles = %d, want %d", got, wantTiles)
	}

	colliders := 0
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
		if b.Static && b.AlignTopLeft && b.Kind == component.BodyKindSolid {
			colliders++
		}
	})
	if colliders != len(lvl.Platforms) {
		t.Fatalf("colliders = %d, want %d", colliders, len(lvl.Platforms))
	}

	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		t.Fatalf("no level bounds")
	}
	b, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	if b.Width != 3200 || b.Height != 736 || b.KillY <= b.Height {
		t.Fatalf("bounds = %+v", b)
	}
}
