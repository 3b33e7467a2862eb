package component

type Camera struct {
	TargetName string
	Zoom       float64
	// LerpX/LerpY are the per-frame follow factors; 1 snaps to the target.
	LerpX   float64
	LerpY   float64
	RoundPx bool
}

var CameraComponent = NewComponent[Camera]()
