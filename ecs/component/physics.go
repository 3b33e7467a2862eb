package component

import "github.com/jakecoffman/cp"

// BodyKind decides which collision pairs a body takes part in.
type BodyKind int

const (
	BodyKindSolid BodyKind = iota + 1
	BodyKindPlayer
	BodyKindEnemy
	BodyKindPowerUp
	BodyKindGoal
)

func (k BodyKind) String() string {
	switch k {
	case BodyKindSolid:
		return "solid"
	case BodyKindPlayer:
		return "player"
	case BodyKindEnemy:
		return "enemy"
	case BodyKindPowerUp:
		return "powerup"
	case BodyKindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Transform X/Y is the body center unless AlignTopLeft is set.
type PhysicsBody struct {
	Body         *cp.Body
	Shape        *cp.Shape
	Kind         BodyKind
	Width        float64
	Height       float64
	Mass         float64
	Friction     float64
	Elasticity   float64
	Static       bool
	Kinematic    bool
	AlignTopLeft bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
