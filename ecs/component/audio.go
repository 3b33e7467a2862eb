package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds the named sound effects of an entity. Systems request a
// sound with Play(name); AudioSystem starts it on the next tick.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Queued  []bool
}

func (a *Audio) Play(name string) bool {
	for i, n := range a.Names {
		if n == name {
			for len(a.Queued) < len(a.Names) {
				a.Queued = append(a.Queued, false)
			}
			a.Queued[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
