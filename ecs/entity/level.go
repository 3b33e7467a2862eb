package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

// killMargin is how far below the level floor the player may fall before
// dying.
const killMargin = 2

// LoadLevelToWorld creates the level bounds, one sprite per platform tile
// and one static collider per platform.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}
	tileSize := float64(lvl.TileSize)
	if tileSize <= 0 {
		tileSize = levels.DefaultTileSize
	}

	width, height := lvl.Bounds()
	boundsEntity := ecs.CreateEntity(world)
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  width,
		Height: height,
		KillY:  height + killMargin*tileSize,
	}); err != nil {
		return fmt.Errorf("load level: add bounds: %w", err)
	}

	var template ecs.Entity
	for i, p := range lvl.Platforms {
		for ty := p.Y; ty < p.Y+p.H; ty++ {
			for tx := p.X; tx < p.X+p.W; tx++ {
				x, y := float64(tx)*tileSize, float64(ty)*tileSize
				if !template.Valid() {
					e, err := BuildEntity(world, "tile.yaml")
					if err != nil {
						return fmt.Errorf("load level: tile: %w", err)
					}
					if err := SetEntityTransform(world, e, x, y, 0); err != nil {
						return err
					}
					template = e
					continue
				}
				if err := cloneTile(world, template, x, y); err != nil {
					return fmt.Errorf("load level: tile: %w", err)
				}
			}
		}

		if err := addPlatformCollider(world, p, tileSize); err != nil {
			return fmt.Errorf("load level: platform %d: %w", i, err)
		}
	}

	return nil
}

// cloneTile copies the tile prefab's render components instead of decoding
// the prefab again for every tile.
func cloneTile(world *ecs.World, template ecs.Entity, x, y float64) error {
	e := ecs.CreateEntity(world)
	if err := ecs.Add(world, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{}); err != nil {
		return err
	}
	if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return err
	}
	if sprite, ok := ecs.Get(world, template, component.SpriteComponent.Kind()); ok {
		s := *sprite
		if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &s); err != nil {
			return err
		}
	}
	if layer, ok := ecs.Get(world, template, component.RenderLayerComponent.Kind()); ok {
		l := *layer
		if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &l); err != nil {
			return err
		}
	}
	return nil
}

func addPlatformCollider(world *ecs.World, p levels.Rect, tileSize float64) error {
	e := ecs.CreateEntity(world)
	if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
		X:      float64(p.X) * tileSize,
		Y:      float64(p.Y) * tileSize,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return err
	}
	return ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:         component.BodyKindSolid,
		Width:        float64(p.W) * tileSize,
		Height:       float64(p.H) * tileSize,
		Friction:     0.9,
		Static:       true,
		AlignTopLeft: true,
	})
}
