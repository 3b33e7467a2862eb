package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene ids. Level scenes are registered per level as LevelID(name).
const (
	MenuID     = "menu"
	CompleteID = "complete"

	levelPrefix = "level:"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene is one screen of the game. Enter builds its state and may fail;
// Exit releases it. Update and Draw are forwarded from the ebiten loop.
type Scene interface {
	Enter() error
	Update() error
	Draw(screen *ebiten.Image)
	Exit()
}

// Factory creates a fresh scene each time it is started.
type Factory func() Scene

func LevelID(name string) string {
	return levelPrefix + name
}
