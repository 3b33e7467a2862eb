// Command levelcheck validates level files and the chain of next levels
// they form. Unknown enemy or power-up types are reported as warnings
// because the game skips them at load time. Each valid level is then
// built into a throwaway world so broken prefabs show up here rather than
// in game.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/levels"
)

type report struct {
	name     string
	errs     []string
	warnings []string
}

func main() {
	strict := flag.Bool("strict", false, "treat warnings as errors")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: levelcheck [-strict] [level.json ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	entity.Headless()

	names := flag.Args()
	if len(names) == 0 {
		names = levels.Names()
	}
	if len(names) == 0 {
		log.Fatal("no levels to check")
	}

	known := make(map[string]bool, len(names))
	for _, n := range levels.Names() {
		known[n] = true
	}

	failed := false
	for _, name := range names {
		r := check(name, known)
		for _, w := range r.warnings {
			fmt.Printf("%s: warning: %s\n", r.name, w)
		}
		for _, e := range r.errs {
			fmt.Printf("%s: error: %s\n", r.name, e)
		}
		if len(r.errs) > 0 || (*strict && len(r.warnings) > 0) {
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", r.name)
	}
	if failed {
		os.Exit(1)
	}
}

func check(name string, known map[string]bool) report {
	r := report{name: name}

	var (
		lvl *levels.Level
		err error
	)
	if strings.HasSuffix(name, ".json") {
		var data []byte
		data, err = os.ReadFile(name)
		if err == nil {
			lvl, err = levels.Parse(data)
		}
		r.name = strings.TrimSuffix(filepath.Base(name), ".json")
	} else {
		lvl, err = levels.Load(name)
	}
	if err != nil {
		r.errs = append(r.errs, err.Error())
		return r
	}

	for i, s := range lvl.Enemies {
		if !entity.KnownEnemy(s.Type) {
			r.warnings = append(r.warnings, fmt.Sprintf("enemy %d: unknown type %q", i, s.Type))
		}
		if !lvl.Contains(levels.Point{X: s.X, Y: s.Y}) {
			r.warnings = append(r.warnings, fmt.Sprintf("enemy %d: (%.0f,%.0f) outside world", i, s.X, s.Y))
		}
	}
	for i, s := range lvl.PowerUps {
		if !entity.KnownPowerUp(s.Type) {
			r.warnings = append(r.warnings, fmt.Sprintf("powerup %d: unknown type %q", i, s.Type))
		}
		if !lvl.Contains(levels.Point{X: s.X, Y: s.Y}) {
			r.warnings = append(r.warnings, fmt.Sprintf("powerup %d: (%.0f,%.0f) outside world", i, s.X, s.Y))
		}
	}
	if lvl.Next != "" && !known[lvl.Next] {
		r.errs = append(r.errs, fmt.Sprintf("next level %q does not exist", lvl.Next))
	}
	if err := build(lvl); err != nil {
		r.errs = append(r.errs, fmt.Sprintf("build: %v", err))
	}
	return r
}

// build spawns everything the level scene would, skipping unknown types.
func build(lvl *levels.Level) error {
	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return err
	}
	if _, err := entity.NewPlayerAt(w, lvl.PlayerStart.X, lvl.PlayerStart.Y); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	for i, s := range lvl.Enemies {
		if !entity.KnownEnemy(s.Type) {
			continue
		}
		if _, err := entity.NewEnemyAt(w, s.Type, s.X, s.Y); err != nil {
			return fmt.Errorf("enemy %d: %w", i, err)
		}
	}
	for i, s := range lvl.PowerUps {
		if !entity.KnownPowerUp(s.Type) {
			continue
		}
		if _, err := entity.NewPowerUpAt(w, s.Type, s.X, s.Y); err != nil {
			return fmt.Errorf("powerup %d: %w", i, err)
		}
	}
	if _, err := entity.NewGoalAt(w, lvl.Goal.X, lvl.Goal.Y, lvl.Next); err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	return nil
}
