package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// aiScriptInputs are declared on every script before compiling so the
// runtime can Set them; vx, vy and dir are read back after each run.
var aiScriptInputs = []string{
	"x", "y", "vx", "vy", "dir", "tick",
	"blocked", "ledge",
	"speed", "range", "amplitude",
	"home_x", "home_y",
}

// AISystem runs each enemy's tengo behaviour script once per tick. A script
// is compiled once per path and cloned per entity.
type AISystem struct {
	templates map[string]*tengo.Compiled
	runtimes  map[ecs.Entity]*aiScriptRuntime
	failed    map[string]bool

	loadScript func(string) ([]byte, error)
}

type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	broken     bool
}

func NewAISystem() *AISystem {
	return &AISystem{
		templates:  map[string]*tengo.Compiled{},
		runtimes:   map[ecs.Entity]*aiScriptRuntime{},
		failed:     map[string]bool{},
		loadScript: prefabs.LoadScript,
	}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.AIScriptComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.AIScript, bodyComp *component.PhysicsBody, t *component.Transform) {
		if bodyComp.Body == nil {
			return
		}
		if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok && enemy.Defeated {
			return
		}

		rt, err := s.runtime(e, ai.Path)
		if err != nil {
			if !s.failed[ai.Path] {
				log.Printf("ai: entity=%v script %q: %v", e, ai.Path, err)
				s.failed[ai.Path] = true
			}
			return
		}
		if rt.broken {
			return
		}

		if !ai.HomeSet {
			ai.HomeX, ai.HomeY = t.X, t.Y
			ai.HomeSet = true
		}

		blocked, ledge := false, false
		if c, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
			blocked = (c.Wall == component.WallLeft && ai.Dir < 0) || (c.Wall == component.WallRight && ai.Dir > 0)
			ledge = c.Ledge
		}

		vel := bodyComp.Body.Velocity()
		in := aiInputs{
			X: t.X, Y: t.Y, VX: vel.X, VY: vel.Y, Dir: ai.Dir, Tick: ai.Tick,
			Blocked: blocked, Ledge: ledge,
			Speed: ai.Speed, Range: ai.Range, Amplitude: ai.Amplitude,
			HomeX: ai.HomeX, HomeY: ai.HomeY,
		}
		out, err := rt.run(in)
		if err != nil {
			log.Printf("ai: entity=%v script %q: %v", e, ai.Path, err)
			rt.broken = true
			return
		}

		ai.Dir = out.Dir
		ai.Tick++
		bodyComp.Body.SetVelocity(out.VX, out.VY)
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && out.Dir != 0 {
			sprite.FacingLeft = out.Dir < 0
		}
	})
}

type aiInputs struct {
	X, Y, VX, VY, Dir       float64
	Tick                    int
	Blocked, Ledge          bool
	Speed, Range, Amplitude float64
	HomeX, HomeY            float64
}

type aiOutputs struct {
	VX, VY, Dir float64
}

func (s *AISystem) runtime(e ecs.Entity, path string) (*aiScriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.scriptPath == path {
		return rt, nil
	}
	if s.failed[path] {
		return nil, fmt.Errorf("previously failed to compile")
	}
	tmpl, ok := s.templates[path]
	if !ok {
		compiled, err := compileAIScript(s.loadScript, path)
		if err != nil {
			return nil, err
		}
		tmpl = compiled
		s.templates[path] = tmpl
	}
	rt := &aiScriptRuntime{scriptPath: path, compiled: tmpl.Clone()}
	s.runtimes[e] = rt
	return rt, nil
}

func compileAIScript(load func(string) ([]byte, error), path string) (*tengo.Compiled, error) {
	if path == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	for _, name := range aiScriptInputs {
		var zero interface{} = 0.0
		switch name {
		case "tick":
			zero = 0
		case "blocked", "ledge":
			zero = false
		}
		if err := script.Add(name, zero); err != nil {
			return nil, fmt.Errorf("declare %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

func (rt *aiScriptRuntime) run(in aiInputs) (aiOutputs, error) {
	values := map[string]interface{}{
		"x": in.X, "y": in.Y, "vx": in.VX, "vy": in.VY, "dir": in.Dir, "tick": in.Tick,
		"blocked": in.Blocked, "ledge": in.Ledge,
		"speed": in.Speed, "range": in.Range, "amplitude": in.Amplitude,
		"home_x": in.HomeX, "home_y": in.HomeY,
	}
	for name, v := range values {
		if err := rt.compiled.Set(name, v); err != nil {
			return aiOutputs{}, fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := rt.compiled.Run(); err != nil {
		return aiOutputs{}, err
	}
	return aiOutputs{
		VX:  rt.compiled.Get("vx").Float(),
		VY:  rt.compiled.Get("vy").Float(),
		Dir: rt.compiled.Get("dir").Float(),
	}, nil
}
