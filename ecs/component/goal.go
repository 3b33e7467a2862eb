package component

// Goal marks the level exit. Next is the level to load when reached.
type Goal struct {
	Next    string
	Reached bool
}

var GoalComponent = NewComponent[Goal]()
