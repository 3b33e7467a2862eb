package component

import "github.com/hajimehoshi/ebiten/v2"

// Enemy marks a hostile entity that hurts the player on contact and can be
// stomped from above.
type Enemy struct {
	Type     string
	Defeated bool
	// SquashFrames is how long a defeated enemy lingers before it is removed.
	SquashFrames int
	SquashImage  *ebiten.Image
}

var EnemyComponent = NewComponent[Enemy]()

// AIScript binds an entity to a tengo behaviour script. Speed, Range and
// Amplitude are exposed to the script as tunables; Dir and Tick persist
// between runs.
type AIScript struct {
	Path      string
	Speed     float64
	Range     float64
	Amplitude float64
	HomeX     float64
	HomeY     float64
	Dir       float64
	Tick      int
	HomeSet   bool
}

var AIScriptComponent = NewComponent[AIScript]()
