package main

import (
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scene"
)

type Game struct {
	manager  *scene.Manager
	registry *scene.Registry
	watcher  *prefabs.Watcher
}

// NewGame registers the menu, the completion screen and one scene per
// level. With levelName set the game starts straight in that level.
func NewGame(levelName string, debug bool) *Game {
	registry := scene.NewRegistry()
	manager := scene.NewManager(scene.MenuID)

	names := levels.Names()
	if levelName != "" && !slices.Contains(names, levelName) {
		names = append(names, levelName)
	}
	firstLevel := "level1"
	if len(names) > 0 && !slices.Contains(names, firstLevel) {
		firstLevel = names[0]
	}

	for _, name := range names {
		manager.Register(scene.LevelID(name), func() scene.Scene {
			return scene.NewLevelScene(name, manager, registry, debug)
		})
	}
	manager.Register(scene.MenuID, func() scene.Scene {
		return scene.NewMenuScene(manager, registry, firstLevel)
	})
	manager.Register(scene.CompleteID, func() scene.Scene {
		return scene.NewCompleteScene(manager, registry)
	})

	start := scene.MenuID
	if levelName != "" {
		start = scene.LevelID(levelName)
	}
	if err := manager.Start(start); err != nil {
		log.Printf("failed to start %s: %v", start, err)
		_ = manager.Start(scene.MenuID)
	}

	return &Game{manager: manager, registry: registry}
}

// Watch restarts the current scene whenever a prefab, script or level
// file changes on disk.
func (g *Game) Watch(dirs ...string) error {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()
	return g.manager.Update()
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("reload: %s changed", path)
			changed = true
			continue
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("reload: watch error: %v", err)
			continue
		default:
		}
		break
	}
	if changed {
		g.manager.Restart()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.manager.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
