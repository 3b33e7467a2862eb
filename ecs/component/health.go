package component

type Health struct {
	Initial int
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
