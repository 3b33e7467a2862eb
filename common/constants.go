package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
	TPS        = 60

	// Gravity is in pixels per second squared.
	Gravity  = 900.0
	TileSize = 32
)

// FramesFromMillis converts a duration in milliseconds to update ticks.
func FramesFromMillis(ms int) int {
	f := ms * TPS / 1000
	if f < 1 {
		return 1
	}
	return f
}
