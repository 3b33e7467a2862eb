package scene

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Manager owns the active scene. Scene changes requested with Start or
// Restart take effect at the start of the next Update, so a scene never
// replaces itself mid-frame.
type Manager struct {
	factories map[string]Factory
	fallback  string

	current   Scene
	currentID string

	pending    string
	hasPending bool
}

// NewManager returns a manager that falls back to the scene registered
// as fallback when entering another scene fails.
func NewManager(fallback string) *Manager {
	return &Manager{factories: make(map[string]Factory), fallback: fallback}
}

func (m *Manager) Register(id string, f Factory) {
	if f == nil {
		return
	}
	m.factories[id] = f
}

func (m *Manager) Registered(id string) bool {
	_, ok := m.factories[id]
	return ok
}

// Start schedules a switch to the scene id.
func (m *Manager) Start(id string) error {
	if !m.Registered(id) {
		return fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	m.pending = id
	m.hasPending = true
	return nil
}

// Restart schedules a fresh instance of the current scene.
func (m *Manager) Restart() {
	if m.currentID == "" {
		return
	}
	m.pending = m.currentID
	m.hasPending = true
}

func (m *Manager) Current() (string, Scene) {
	return m.currentID, m.current
}

func (m *Manager) Update() error {
	if m.hasPending {
		m.switchTo(m.pending)
	}
	if m.current == nil {
		return nil
	}
	return m.current.Update()
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current == nil {
		return
	}
	m.current.Draw(screen)
}

func (m *Manager) switchTo(id string) {
	m.hasPending = false
	if m.current != nil {
		m.current.Exit()
		m.current = nil
		m.currentID = ""
	}

	f, ok := m.factories[id]
	if !ok {
		log.Printf("scene: %v: %q", ErrUnknownScene, id)
		return
	}
	next := f()
	if err := next.Enter(); err != nil {
		log.Printf("scene: enter %s: %v", id, err)
		if id != m.fallback && m.Registered(m.fallback) {
			m.switchTo(m.fallback)
		}
		return
	}
	m.current = next
	m.currentID = id
}
