package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var (
	loadImage       = assets.LoadImage
	loadAudioPlayer = assets.LoadAudioPlayer
)

// Headless stops builders from touching the GPU or the audio device.
// Sprites get no image and clips no player; the renderer and the audio
// system skip both. Call it before building any entity.
func Headless() {
	loadImage = func(string) (*ebiten.Image, error) { return nil, nil }
	loadAudioPlayer = func(string) (*audio.Player, error) { return nil, nil }
}

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"camera_tag":    addCameraTag,
	"platform_tag":  addPlatformTag,
	"player":        addPlayer,
	"input":         addInput,
	"contacts":      addContacts,
	"transform":     addTransform,
	"sprite":        addSprite,
	"render_layer":  addRenderLayer,
	"screen_space":  addScreenSpace,
	"camera":        addCamera,
	"enemy":         addEnemy,
	"ai_script":     addAIScript,
	"powerup":       addPowerUp,
	"hover":         addHover,
	"goal":          addGoal,
	"tween":         addTween,
	"audio":         addAudio,
	"physics_body":  addPhysicsBody,
	"gravity_scale": addGravityScale,
	"health":        addHealth,
	"hud":           addHUD,
}

// componentBuildOrder puts transform before anything that reads it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"platform_tag",
	"player",
	"input",
	"contacts",
	"transform",
	"sprite",
	"render_layer",
	"screen_space",
	"camera",
	"enemy",
	"ai_script",
	"powerup",
	"hover",
	"goal",
	"tween",
	"audio",
	"physics_body",
	"gravity_scale",
	"health",
	"hud",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := build(name); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, err
			}
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addPlatformTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:        spec.MoveSpeed,
		JumpSpeed:        spec.JumpSpeed,
		CoyoteFrames:     spec.CoyoteFrames,
		InvincibleFrames: spec.InvincibleFrames,
		KnockbackFrames:  spec.KnockbackFrames,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addContacts(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := loadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		w, h := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
		sprite.OriginX = float64(w) / 2
		sprite.OriginY = float64(h) / 2
	}
	sprite.FacingLeft = spec.FacingLeft

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addScreenSpace(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScreenSpaceComponent.Kind(), &component.ScreenSpace{})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.LerpX == 0 {
		spec.LerpX = 0.1
	}
	if spec.LerpY == 0 {
		spec.LerpY = 0.1
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		LerpX:      spec.LerpX,
		LerpY:      spec.LerpY,
		RoundPx:    spec.RoundPx,
	})
}

type enemySpec = prefabs.EnemyComponentSpec

func addEnemy(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[enemySpec](raw)
	if err != nil {
		return fmt.Errorf("decode enemy spec: %w", err)
	}
	enemy := &component.Enemy{Type: spec.Type, SquashFrames: spec.SquashFrames}
	if spec.SquashImage != "" {
		img, err := loadImage(spec.SquashImage)
		if err != nil {
			return fmt.Errorf("load squash image %q: %w", spec.SquashImage, err)
		}
		enemy.SquashImage = img
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), enemy)
}

type aiScriptSpec = prefabs.AIScriptComponentSpec

func addAIScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[aiScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ai_script spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("ai_script requires script")
	}
	return ecs.Add(w, e, component.AIScriptComponent.Kind(), &component.AIScript{
		Path:      spec.Script,
		Speed:     spec.Speed,
		Range:     spec.Range,
		Amplitude: spec.Amplitude,
		Dir:       spec.Dir,
	})
}

type powerUpSpec = prefabs.PowerUpComponentSpec

func addPowerUp(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[powerUpSpec](raw)
	if err != nil {
		return fmt.Errorf("decode powerup spec: %w", err)
	}
	return ecs.Add(w, e, component.PowerUpComponent.Kind(), &component.PowerUp{
		Type:             spec.Type,
		Score:            spec.Score,
		Heal:             spec.Heal,
		InvincibleFrames: spec.InvincibleFrames,
		Sound:            spec.Sound,
	})
}

type hoverSpec = prefabs.HoverComponentSpec

func addHover(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hoverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hover spec: %w", err)
	}
	return ecs.Add(w, e, component.HoverComponent.Kind(), &component.Hover{Amplitude: spec.Amplitude, Speed: spec.Speed})
}

func addGoal(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GoalComponent.Kind(), &component.Goal{})
}

type tweenSpec = prefabs.TweenComponentSpec

func addTween(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[tweenSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tween spec: %w", err)
	}
	var prop component.TweenProperty
	switch strings.ToLower(spec.Property) {
	case "x":
		prop = component.TweenX
	case "y", "":
		prop = component.TweenY
	default:
		return fmt.Errorf("unknown tween property %q", spec.Property)
	}
	return ecs.Add(w, e, component.TweenComponent.Kind(), &component.Tween{
		Property:       prop,
		By:             spec.By,
		DurationFrames: common.FramesFromMillis(spec.DurationMs),
		Ease:           spec.Ease,
		Yoyo:           spec.Yoyo,
		Repeat:         spec.Repeat,
	})
}

type audioClipSpec = prefabs.AudioClipSpec

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponentFromSpec(spec.Clips)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	kind, err := parseBodyKind(spec.Kind)
	if err != nil {
		return err
	}

	width, height := spec.Width, spec.Height
	if width == 0 {
		width = common.TileSize
	}
	if height == 0 {
		height = common.TileSize
	}
	if !spec.Static && !spec.Kinematic && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:         kind,
		Width:        width,
		Height:       height,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		Elasticity:   spec.Elasticity,
		Static:       spec.Static,
		Kinematic:    spec.Kinematic,
		AlignTopLeft: spec.AlignTopLeft,
	})
}

func parseBodyKind(v string) (component.BodyKind, error) {
	switch strings.ToLower(v) {
	case "", "solid":
		return component.BodyKindSolid, nil
	case "player":
		return component.BodyKindPlayer, nil
	case "enemy":
		return component.BodyKindEnemy, nil
	case "powerup":
		return component.BodyKindPowerUp, nil
	case "goal":
		return component.BodyKindGoal, nil
	default:
		return 0, fmt.Errorf("unknown body kind %q", v)
	}
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Initial == 0 {
		spec.Initial = 1
	}
	if spec.Current == 0 {
		spec.Current = spec.Initial
	}
	if spec.Max < spec.Initial {
		spec.Max = spec.Initial
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Initial: spec.Initial, Current: spec.Current, Max: spec.Max})
}

type hudSpec = prefabs.HUDComponentSpec

func addHUD(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hudSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hud spec: %w", err)
	}
	hud := &component.HUD{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	if spec.Color != nil {
		hud.Color = spec.Color.RGBA
	}
	if err := ecs.Add(w, e, component.HUDComponent.Kind(), hud); err != nil {
		return err
	}
	// HUDSystem renders into this sprite once it has text.
	if !ecs.Has(w, e, component.SpriteComponent.Kind()) {
		return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{})
	}
	return nil
}

func buildAudioComponentFromSpec(audioSpecs []audioClipSpec) (*component.Audio, error) {
	n := len(audioSpecs)
	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)
	queued := make([]bool, 0, n)

	for i, clip := range audioSpecs {
		player, err := loadAudioPlayer(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, clip.Volume)
		queued = append(queued, false)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Queued:  queued,
	}, nil
}
