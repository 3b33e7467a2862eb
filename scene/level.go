package scene

import (
	"errors"
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
)

// LevelScene plays one level: it builds the world from level data, wires
// the overlap callbacks and drives the systems each frame.
type LevelScene struct {
	name     string
	manager  *Manager
	registry *Registry
	debug    bool

	level     *levels.Level
	world     *ecs.World
	scheduler *ecs.Scheduler
	input     ecs.System
	physics   *system.PhysicsSystem
	overlaps  *system.OverlapSystem
	freeze    *system.HitFreezeSystem
	render    *system.RenderSystem

	player   ecs.Entity
	enemies  map[ecs.Entity]struct{}
	powerUps map[ecs.Entity]struct{}
	goal     ecs.Entity

	// entryScore is restored when the player dies.
	entryScore      int
	levelCompleting bool
	restarting      bool

	paused  bool
	pauseUI *ebitenui.UI
}

func NewLevelScene(name string, manager *Manager, registry *Registry, debug bool) *LevelScene {
	return &LevelScene{
		name:     name,
		manager:  manager,
		registry: registry,
		debug:    debug,
		enemies:  make(map[ecs.Entity]struct{}),
		powerUps: make(map[ecs.Entity]struct{}),
	}
}

func (s *LevelScene) Enter() error {
	lvl, err := levels.Load(s.name)
	if err != nil {
		log.Printf("level %s: %v", s.name, err)
		return fmt.Errorf("load level %q: %w", s.name, err)
	}
	s.level = lvl
	s.world = ecs.NewWorld()

	if err := entity.LoadLevelToWorld(s.world, lvl); err != nil {
		return err
	}

	s.player, err = entity.NewPlayerAt(s.world, lvl.PlayerStart.X, lvl.PlayerStart.Y)
	if err != nil {
		return fmt.Errorf("level %s: spawn player: %w", lvl.ID, err)
	}

	for _, spawn := range lvl.Enemies {
		e, err := entity.NewEnemyAt(s.world, spawn.Type, spawn.X, spawn.Y)
		if errors.Is(err, entity.ErrUnknownType) {
			log.Printf("level %s: skipping enemy: %v", lvl.ID, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("level %s: spawn enemy: %w", lvl.ID, err)
		}
		s.enemies[e] = struct{}{}
	}

	for _, spawn := range lvl.PowerUps {
		e, err := entity.NewPowerUpAt(s.world, spawn.Type, spawn.X, spawn.Y)
		if errors.Is(err, entity.ErrUnknownType) {
			log.Printf("level %s: skipping powerup: %v", lvl.ID, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("level %s: spawn powerup: %w", lvl.ID, err)
		}
		s.powerUps[e] = struct{}{}
	}

	if _, err := entity.NewCameraAt(s.world, 0, 0); err != nil {
		return fmt.Errorf("level %s: camera: %w", lvl.ID, err)
	}
	s.goal, err = entity.NewGoalAt(s.world, lvl.Goal.X, lvl.Goal.Y, lvl.Next)
	if err != nil {
		return fmt.Errorf("level %s: goal: %w", lvl.ID, err)
	}
	if _, err := entity.NewHUD(s.world); err != nil {
		return fmt.Errorf("level %s: hud: %w", lvl.ID, err)
	}

	s.registry.EnterLevel(lvl.ID, lvl.Name)
	s.entryScore = s.registry.Score()
	s.buildSystems()
	return nil
}

func (s *LevelScene) buildSystems() {
	s.physics = system.NewPhysicsSystem()
	s.freeze = system.NewHitFreezeSystem()
	s.overlaps = system.NewOverlapSystem()
	s.overlaps.Register(component.BodyKindPlayer, component.BodyKindEnemy, s.handlePlayerEnemyCollision)
	s.overlaps.Register(component.BodyKindPlayer, component.BodyKindPowerUp, s.handlePlayerPowerUpCollision)
	s.overlaps.Register(component.BodyKindPlayer, component.BodyKindGoal, s.handleGoalReached)

	controller := system.NewPlayerControllerSystem()
	controller.OnJump = func(w *ecs.World, e ecs.Entity) { playSound(w, e, "jump") }

	// Input runs ahead of the scheduler so pause and hit freeze still see
	// the menu keys.
	s.input = system.NewInputSystem()
	s.scheduler = ecs.NewScheduler(
		controller,
		system.NewAISystem(),
		s.physics,
		s.overlaps,
		s.freeze,
		system.NewInvulnerableSystem(),
		system.NewTweenSystem(),
		system.NewHoverSystem(),
		system.NewTTLSystem(),
		system.NewCameraSystem(),
		system.NewAudioSystem(),
		system.NewHUDSystem(s.registry),
	)

	s.render = system.NewRenderSystem()
	s.render.Debug = s.debug
	s.render.Physics = s.physics
}

func (s *LevelScene) Update() error {
	if s.world == nil {
		return nil
	}
	s.input.Update(s.world)
	if s.handleMenuKeys() {
		return nil
	}
	if s.paused {
		if s.pauseUI != nil {
			s.pauseUI.Update()
		}
		return nil
	}

	if s.freeze.Hold() {
		return nil
	}
	s.scheduler.Update(s.world)
	for e := range s.enemies {
		if !ecs.IsAlive(s.world, e) {
			delete(s.enemies, e)
		}
	}

	if !s.levelCompleting && s.playerDead() {
		s.restart()
	}
	return nil
}

// handleMenuKeys leaves for the menu on back and toggles pause. It reports
// whether the tick was consumed.
func (s *LevelScene) handleMenuKeys() bool {
	input, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind())
	if !ok {
		return false
	}
	switch {
	case input.BackPressed:
		s.toMenu()
		return true
	case input.PausePressed:
		s.paused = !s.paused
		return true
	}
	return false
}

func (s *LevelScene) Draw(screen *ebiten.Image) {
	if s.world == nil {
		return
	}
	s.render.Draw(s.world, screen)
	if !s.paused {
		return
	}
	// Built on first use so entering a level needs no UI images.
	if s.pauseUI == nil {
		s.pauseUI = newPauseUI(s.resume, s.toMenu)
	}
	s.pauseUI.Draw(screen)
}

func (s *LevelScene) Exit() {
	if s.physics != nil {
		s.physics.Reset()
	}
	s.world = nil
}

func (s *LevelScene) resume() { s.paused = false }

func (s *LevelScene) toMenu() {
	if err := s.manager.Start(MenuID); err != nil {
		log.Printf("level %s: %v", s.name, err)
	}
}

// playerDead reports whether the player ran out of health or fell below
// the level.
func (s *LevelScene) playerDead() bool {
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok && p.Dead {
		return true
	}
	if h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind()); ok && h.Current <= 0 {
		return true
	}
	t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	be, ok := ecs.First(s.world, component.LevelBoundsComponent.Kind())
	if !ok {
		return false
	}
	b, _ := ecs.Get(s.world, be, component.LevelBoundsComponent.Kind())
	return b.KillY > 0 && t.Y > b.KillY
}

// restart replays the level with the score it was entered with.
func (s *LevelScene) restart() {
	if s.restarting {
		return
	}
	s.restarting = true
	s.registry.SetScore(s.entryScore)
	s.manager.Restart()
}
