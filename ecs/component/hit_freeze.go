package component

// HitFreezeRequest asks the scene to hold the simulation for Frames ticks.
type HitFreezeRequest struct {
	Frames int
}

var HitFreezeRequestComponent = NewComponent[HitFreezeRequest]()
