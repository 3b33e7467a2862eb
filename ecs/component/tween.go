package component

type TweenProperty int

const (
	TweenX TweenProperty = iota
	TweenY
)

const (
	EaseLinear    = "linear"
	EaseSineInOut = "sine.inout"
)

// Tween animates one transform axis by By over DurationFrames, starting
// from wherever the axis is on the first tick. Repeat < 0 loops forever;
// Yoyo plays each cycle back to the start before repeating.
type Tween struct {
	Property       TweenProperty
	By             float64
	DurationFrames int
	Ease           string
	Yoyo           bool
	Repeat         int

	From      float64
	To        float64
	Frame     int
	Reversing bool
	Started   bool
	Done      bool
}

var TweenComponent = NewComponent[Tween]()
