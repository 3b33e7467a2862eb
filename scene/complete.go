package scene

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// CompleteScene is shown after the last level.
type CompleteScene struct {
	manager  *Manager
	registry *Registry
	ui       *ebitenui.UI
}

func NewCompleteScene(manager *Manager, registry *Registry) *CompleteScene {
	return &CompleteScene{manager: manager, registry: registry}
}

func (s *CompleteScene) Enter() error {
	s.ui = newPanelUI("All levels complete!", []string{
		fmt.Sprintf("Final score: %d", s.registry.Score()),
	}, []uiButton{
		{label: "Menu", onClick: s.toMenu},
	}, color.NRGBA{A: 160})
	return nil
}

func (s *CompleteScene) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.toMenu()
		return nil
	}
	s.ui.Update()
	return nil
}

func (s *CompleteScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackground)
	s.ui.Draw(screen)
}

func (s *CompleteScene) Exit() {}

func (s *CompleteScene) toMenu() {
	if err := s.manager.Start(MenuID); err != nil {
		log.Printf("complete: %v", err)
	}
}
