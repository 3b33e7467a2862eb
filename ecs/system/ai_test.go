package system

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func spawnScripted(t *testing.T, w *ecs.World, ai component.AIScript, x, y float64, contacts *component.Contacts) (ecs.Entity, *cp.Body) {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := cp.NewBody(1, cp.INFINITY)
	if err := ecs.Add(w, e, component.AIScriptComponent.Kind(), &ai); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Kind: component.BodyKindEnemy}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	if contacts != nil {
		if err := ecs.Add(w, e, component.ContactsComponent.Kind(), contacts); err != nil {
			t.Fatal(err)
		}
	}
	return e, body
}

func TestSlimeScriptTurns(t *testing.T) {
	tests := []struct {
		name     string
		dir      float64
		contacts component.Contacts
		wantDir  float64
	}{
		{"open_ground", -1, component.Contacts{Grounded: true}, -1},
		{"wall_ahead", -1, component.Contacts{Grounded: true, Wall: component.WallLeft}, 1},
		{"wall_behind", 1, component.Contacts{Grounded: true, Wall: component.WallLeft}, 1},
		{"ledge_ahead", 1, component.Contacts{Grounded: true, Ledge: true}, -1},
		{"zero_dir_defaults_left", 0, component.Contacts{Grounded: true}, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			contacts := tc.contacts
			e, body := spawnScripted(t, w, component.AIScript{Path: "slime.tengo", Speed: 60, Dir: tc.dir}, 100, 100, &contacts)

			NewAISystem().Update(w)

			ai, _ := ecs.Get(w, e, component.AIScriptComponent.Kind())
			if ai.Dir != tc.wantDir {
				t.Fatalf("dir = %v, want %v", ai.Dir, tc.wantDir)
			}
			if got := body.Velocity().X; got != tc.wantDir*60 {
				t.Fatalf("vx = %v, want %v", got, tc.wantDir*60)
			}
			if ai.Tick != 1 || !ai.HomeSet {
				t.Fatalf("expected tick 1 and home set, got %+v", ai)
			}
		})
	}
}

func TestFlyingScriptHovers(t *testing.T) {
	w := ecs.NewWorld()
	e, body := spawnScripted(t, w, component.AIScript{Path: "flying.tengo", Speed: 80, Range: 120, Amplitude: 30, Dir: 1}, 200, 100, nil)
	sys := NewAISystem()

	sys.Update(w)
	if v := body.Velocity(); v.X != 80 || v.Y != 0 {
		t.Fatalf("first tick velocity = %v, want (80, 0)", v)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.Y = 90
	sys.Update(w)
	want := (100 + math.Sin(0.05)*30 - 90) * 4
	if got := body.Velocity().Y; math.Abs(got-want) > 1e-6 {
		t.Fatalf("vy = %v, want %v", got, want)
	}

	// past the patrol range the script turns back toward home
	tr.X = 200 + 121
	sys.Update(w)
	if got := body.Velocity().X; got != -80 {
		t.Fatalf("vx past range = %v, want -80", got)
	}
}

func TestAISkipsDefeatedEnemies(t *testing.T) {
	w := ecs.NewWorld()
	e, body := spawnScripted(t, w, component.AIScript{Path: "slime.tengo", Speed: 60, Dir: -1}, 0, 0, nil)
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Type: "slime", Defeated: true}); err != nil {
		t.Fatal(err)
	}

	NewAISystem().Update(w)
	if v := body.Velocity(); v.X != 0 {
		t.Fatalf("defeated enemy moved: %v", v)
	}
}

func TestAIScriptErrorsAreContained(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"load_error", "", errors.New("missing")},
		{"compile_error", "vx = ((", nil},
		{"runtime_error", `vx = "a" - 1`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, body := spawnScripted(t, w, component.AIScript{Path: "broken.tengo", Speed: 60, Dir: 1}, 0, 0, nil)
			sys := NewAISystem()
			loads := 0
			sys.loadScript = func(string) ([]byte, error) {
				loads++
				return []byte(tc.src), tc.err
			}

			sys.Update(w)
			sys.Update(w)
			if v := body.Velocity(); v.X != 0 {
				t.Fatalf("broken script changed velocity: %v", v)
			}
			if loads != 1 {
				t.Fatalf("expected a single load attempt, got %d", loads)
			}
		})
	}
}

func TestAIScriptCompiledOncePerSystem(t *testing.T) {
	w := ecs.NewWorld()
	_, body := spawnScripted(t, w, component.AIScript{Path: "custom.tengo", Speed: 10, Dir: 1}, 0, 0, nil)
	src := "vx = speed"
	loads := 0
	load := func(string) ([]byte, error) { loads++; return []byte(src), nil }

	sys := NewAISystem()
	sys.loadScript = load
	sys.Update(w)
	src = "vx = speed * 2"
	sys.Update(w)
	if got := body.Velocity().X; got != 10 || loads != 1 {
		t.Fatalf("vx = %v after %d loads, want 10 after 1", got, loads)
	}

	// A reload rebuilds the scene, and with it the system.
	fresh := NewAISystem()
	fresh.loadScript = load
	fresh.Update(w)
	if got := body.Velocity().X; got != 20 {
		t.Fatalf("vx after reload = %v, want 20", got)
	}
}
