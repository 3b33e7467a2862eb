package entity

import "github.com/milk9111/platformer/ecs"

// NewHUD builds the screen-space status line. Its text is rendered by
// HUDSystem.
func NewHUD(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "hud.yaml")
}
