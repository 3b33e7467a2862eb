package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	hudTextW = 480
	hudTextH = 16
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// HUDSource supplies the cross-scene values shown on the HUD.
type HUDSource interface {
	Score() int
	LevelName() string
}

type HUDSystem struct {
	source HUDSource
}

func NewHUDSystem(source HUDSource) *HUDSystem {
	return &HUDSystem{source: source}
}

func (s *HUDSystem) Update(w *ecs.World) {
	hudEntity, ok := ecs.First(w, component.HUDComponent.Kind())
	if !ok {
		return
	}
	hud, _ := ecs.Get(w, hudEntity, component.HUDComponent.Kind())

	if s.source != nil {
		hud.Score = s.source.Score()
		hud.Level = s.source.LevelName()
	}
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if health, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			hud.Health = health.Current
			hud.MaxHealth = health.Max
		}
	}

	sprite, ok := ecs.Get(w, hudEntity, component.SpriteComponent.Kind())
	if !ok {
		return
	}
	next := HUDText(hud)
	if sprite.Image != nil && hud.RenderedText == next {
		return
	}

	img := sprite.Image
	if img == nil {
		img = ebiten.NewImage(hudTextW, hudTextH)
		sprite.Image = img
	}
	img.Clear()
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(hud.Color)
	text.Draw(img, next, hudFace, op)
	hud.RenderedText = next
}

// HUDText formats the status line for the current HUD values.
func HUDText(hud *component.HUD) string {
	if hud == nil {
		return ""
	}
	return fmt.Sprintf("Score: %d   Level: %s   Health: %d/%d", hud.Score, hud.Level, hud.Health, hud.MaxHealth)
}
