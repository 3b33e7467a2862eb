package component

// Invulnerable marks an entity as temporarily immune to damage. Frames
// counts down each tick and the component is removed at zero. BlinkPeriod
// > 0 makes the renderer flash the sprite while it lasts.
type Invulnerable struct {
	Frames      int
	BlinkPeriod int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
