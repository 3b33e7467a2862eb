package component

// ScreenSpace marks entities drawn without the camera offset.
type ScreenSpace struct{}

var ScreenSpaceComponent = NewComponent[ScreenSpace]()
