package component

import "image/color"

// HUD holds the screen-space status line. Text is only rebuilt when one of
// the tracked values changes.
type HUD struct {
	Score        int
	Health       int
	MaxHealth    int
	Level        string
	Color        color.RGBA
	RenderedText string
}

var HUDComponent = NewComponent[HUD]()
