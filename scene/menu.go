package scene

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var menuBackground = color.NRGBA{R: 0x1d, G: 0x2b, B: 0x53, A: 0xff}

// MenuScene is the title screen. Start begins a new run from the first
// level; Quit ends the game.
type MenuScene struct {
	manager    *Manager
	registry   *Registry
	firstLevel string

	ui   *ebitenui.UI
	quit bool
}

func NewMenuScene(manager *Manager, registry *Registry, firstLevel string) *MenuScene {
	return &MenuScene{manager: manager, registry: registry, firstLevel: firstLevel}
}

func (s *MenuScene) Enter() error {
	s.quit = false
	s.ui = newPanelUI("PLATFORMER", menuLines(s.registry), []uiButton{
		{label: "Start", onClick: s.start},
		{label: "Quit", onClick: func() { s.quit = true }},
	}, color.NRGBA{A: 160})
	return nil
}

func (s *MenuScene) Update() error {
	if s.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.start()
		return nil
	}
	s.ui.Update()
	return nil
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackground)
	s.ui.Draw(screen)
}

func (s *MenuScene) Exit() {}

func (s *MenuScene) start() {
	s.registry.Reset()
	if err := s.manager.Start(LevelID(s.firstLevel)); err != nil {
		log.Printf("menu: %v", err)
	}
}

// menuLines is the controls help, plus a summary of the last run when the
// player left a level for the menu.
func menuLines(r *Registry) []string {
	lines := []string{"Arrows/WASD to move, Space to jump", "P to pause, ESC for menu"}
	if r.CurrentLevel() != "" {
		lines = append(lines, fmt.Sprintf("Last run: %s, score %d", r.LevelName(), r.Score()))
	}
	return lines
}
