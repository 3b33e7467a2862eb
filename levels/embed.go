package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultTileSize = 32

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name        string  `json:"name"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	TileSize    int     `json:"tile_size"`
	PlayerStart Point   `json:"player_start"`
	Platforms   []Rect  `json:"platforms"`
	Enemies     []Spawn `json:"enemies"`
	PowerUps    []Spawn `json:"powerups"`
	Goal        Point   `json:"goal"`
	Next        string  `json:"next,omitempty"`

	// ID is the file name the level was loaded from, without extension.
	ID string `json:"-"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a platform in tile units.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Spawn places a typed entity at a pixel position.
type Spawn struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Load reads a level by name. A file under levels/ on disk wins over the
// embedded copy so edits are picked up without rebuilding.
func Load(name string) (*Level, error) {
	id := cleanLevelName(name)
	if id == "" {
		return nil, fmt.Errorf("%w: empty level name", ErrInvalidLevel)
	}
	file := id + ".json"

	data, err := os.ReadFile(filepath.Join("levels", file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
		if err != nil {
			return nil, fmt.Errorf("read level %s: %w", id, err)
		}
	}

	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", id, err)
	}
	lvl.ID = id
	if lvl.Name == "" {
		lvl.Name = id
	}
	return lvl, nil
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = DefaultTileSize
	}
	lvl.Next = cleanLevelName(lvl.Next)
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if len(l.Platforms) == 0 {
		return fmt.Errorf("%w: no platforms", ErrInvalidLevel)
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("%w: platform %d has size %dx%d", ErrInvalidLevel, i, p.W, p.H)
		}
	}
	if !l.Contains(l.PlayerStart) {
		return fmt.Errorf("%w: player start (%.0f,%.0f) outside world", ErrInvalidLevel, l.PlayerStart.X, l.PlayerStart.Y)
	}
	if !l.Contains(l.Goal) {
		return fmt.Errorf("%w: goal (%.0f,%.0f) outside world", ErrInvalidLevel, l.Goal.X, l.Goal.Y)
	}
	return nil
}

// Bounds returns the world size in pixels.
func (l *Level) Bounds() (float64, float64) {
	ts := l.TileSize
	if ts <= 0 {
		ts = DefaultTileSize
	}
	return float64(l.Width * ts), float64(l.Height * ts)
}

func (l *Level) Contains(p Point) bool {
	w, h := l.Bounds()
	return p.X >= 0 && p.Y >= 0 && p.X <= w && p.Y <= h
}

// Names lists the embedded levels, sorted.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "levels/")
	return strings.TrimSuffix(s, ".json")
}
