package component

const (
	PowerUpCoin  = "coin"
	PowerUpHeart = "heart"
	PowerUpStar  = "star"
)

// PowerUp is a collectible applied to the player on overlap.
type PowerUp struct {
	Type  string
	Score int
	Heal  int
	// InvincibleFrames grants temporary invulnerability when > 0.
	InvincibleFrames int
	Sound            string
	Collected        bool
}

var PowerUpComponent = NewComponent[PowerUp]()

// Hover bobs an entity around its initial Y.
type Hover struct {
	BaseY       float64
	Amplitude   float64
	Speed       float64
	Phase       float64
	Initialized bool
}

var HoverComponent = NewComponent[Hover]()
