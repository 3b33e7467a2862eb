package component

type Player struct {
	MoveSpeed        float64
	JumpSpeed        float64
	CoyoteFrames     int
	CoyoteTimer      int
	InvincibleFrames int
	KnockbackFrames  int
	// KnockbackTimer keeps the controller from overriding a knockback velocity.
	KnockbackTimer int
	FacingLeft     bool
	Dead           bool
}

var PlayerComponent = NewComponent[Player]()
