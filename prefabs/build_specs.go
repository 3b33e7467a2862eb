package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes a generic YAML node into a typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	JumpSpeed        float64 `yaml:"jump_speed"`
	CoyoteFrames     int     `yaml:"coyote_frames"`
	InvincibleFrames int     `yaml:"invincible_frames"`
	KnockbackFrames  int     `yaml:"knockback_frames"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	LerpX      float64 `yaml:"lerp_x"`
	LerpY      float64 `yaml:"lerp_y"`
	RoundPx    bool    `yaml:"round_px"`
}

type EnemyComponentSpec struct {
	Type         string `yaml:"type"`
	SquashFrames int    `yaml:"squash_frames"`
	SquashImage  string `yaml:"squash_image"`
}

type AIScriptComponentSpec struct {
	Script    string  `yaml:"script"`
	Speed     float64 `yaml:"speed"`
	Range     float64 `yaml:"range"`
	Amplitude float64 `yaml:"amplitude"`
	Dir       float64 `yaml:"dir"`
}

type PowerUpComponentSpec struct {
	Type             string `yaml:"type"`
	Score            int    `yaml:"score"`
	Heal             int    `yaml:"heal"`
	InvincibleFrames int    `yaml:"invincible_frames"`
	Sound            string `yaml:"sound"`
}

type HoverComponentSpec struct {
	Amplitude float64 `yaml:"amplitude"`
	Speed     float64 `yaml:"speed"`
}

type TweenComponentSpec struct {
	Property   string  `yaml:"property"`
	By         float64 `yaml:"by"`
	DurationMs int     `yaml:"duration_ms"`
	Ease       string  `yaml:"ease"`
	Yoyo       bool    `yaml:"yoyo"`
	Repeat     int     `yaml:"repeat"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type PhysicsBodyComponentSpec struct {
	Kind         string  `yaml:"kind"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Mass         float64 `yaml:"mass"`
	Friction     float64 `yaml:"friction"`
	Elasticity   float64 `yaml:"elasticity"`
	Static       bool    `yaml:"static"`
	Kinematic    bool    `yaml:"kinematic"`
	AlignTopLeft bool    `yaml:"align_top_left"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type HealthComponentSpec struct {
	Initial int `yaml:"initial"`
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

type HUDComponentSpec struct {
	Color *YAMLColor `yaml:"color"`
}
