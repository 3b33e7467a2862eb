package component

const (
	WallNone  = 0
	WallLeft  = 1
	WallRight = 2
)

// Contacts stores per-body collision state derived from physics contacts.
type Contacts struct {
	Grounded    bool
	GroundGrace int
	Wall        int
	// Ledge is set for walkers whose leading foot has no ground beneath it.
	Ledge bool
}

var ContactsComponent = NewComponent[Contacts]()
