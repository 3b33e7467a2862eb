package component

const (
	LayerTiles = iota
	LayerPickups
	LayerActors
	LayerPlayer
	LayerHUD = 100
)

// RenderLayer sorts draw order; lower indices draw first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
