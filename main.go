package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/pkg/profile"
)

func main() {
	debug := flag.Bool("debug", false, "draw collider outlines and player state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "start in this level from levels/ (basename, .json optional)")
	watch := flag.Bool("watch", false, "restart the current scene when prefabs, scripts or levels change on disk")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown -profile mode %q (want cpu or mem)", *profileMode)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(common.TPS)

	name := strings.TrimSuffix(filepath.Base(strings.TrimSpace(*levelName)), ".json")
	if *levelName == "" {
		name = ""
	}
	game := NewGame(name, *debug)
	defer game.Close()

	if *watch {
		if err := game.Watch("prefabs", filepath.Join("prefabs", "scripts"), "levels"); err != nil {
			log.Printf("hot reload disabled: %v", err)
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
