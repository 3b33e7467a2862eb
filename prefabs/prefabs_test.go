package prefabs

import (
	"image/color"
	"testing"
)

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"prefab_bare", cleanPrefabPath, "player", "player.yaml"},
		{"prefab_prefixed", cleanPrefabPath, "prefabs/coin.yaml", "coin.yaml"},
		{"prefab_empty", cleanPrefabPath, "", ""},
		{"script_bare", cleanScriptPath, "slime", "scripts/slime.tengo"},
		{"script_scripts_prefix", cleanScriptPath, "scripts/slime.tengo", "scripts/slime.tengo"},
		{"script_full_prefix", cleanScriptPath, "prefabs/scripts/flying.tengo", "scripts/flying.tengo"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEmbeddedPrefabsDecode(t *testing.T) {
	names := []string{"player", "slime", "flying", "coin", "heart", "star", "goal", "camera", "hud", "tile"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("LoadEntityBuildSpec(%s): %v", name, err)
			}
			if spec.Name != name {
				t.Fatalf("name = %q, want %q", spec.Name, name)
			}
			if len(spec.Components) == 0 {
				t.Fatalf("%s has no components", name)
			}
		})
	}
}

func TestDecodePowerUpSpecs(t *testing.T) {
	tests := []struct {
		prefab     string
		score      int
		heal       int
		invincible int
	}{
		{"coin", 50, 0, 0},
		{"heart", 0, 1, 0},
		{"star", 0, 0, 600},
	}
	for _, tc := range tests {
		t.Run(tc.prefab, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.prefab)
			if err != nil {
				t.Fatal(err)
			}
			pu, err := DecodeComponentSpec[PowerUpComponentSpec](spec.Components["powerup"])
			if err != nil {
				t.Fatal(err)
			}
			if pu.Type != tc.prefab || pu.Score != tc.score || pu.Heal != tc.heal || pu.InvincibleFrames != tc.invincible {
				t.Fatalf("unexpected powerup spec %+v", pu)
			}
		})
	}
}

func TestDecodeGoalTween(t *testing.T) {
	spec, err := LoadEntityBuildSpec("goal.yaml")
	if err != nil {
		t.Fatal(err)
	}
	tw, err := DecodeComponentSpec[TweenComponentSpec](spec.Components["tween"])
	if err != nil {
		t.Fatal(err)
	}
	if tw.Property != "y" || tw.By != -20 || tw.DurationMs != 1000 || !tw.Yoyo || tw.Repeat != -1 || tw.Ease != "sine.inout" {
		t.Fatalf("unexpected goal tween %+v", tw)
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	out, err := DecodeComponentSpec[HealthComponentSpec](nil)
	if err != nil || out != (HealthComponentSpec{}) {
		t.Fatalf("expected zero spec, got %+v err=%v", out, err)
	}
}

func TestLoadScripts(t *testing.T) {
	for _, name := range []string{"slime.tengo", "flying"} {
		b, err := LoadScript(name)
		if err != nil || len(b) == 0 {
			t.Fatalf("LoadScript(%s): %v", name, err)
		}
	}
	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}
	for _, tc := range tests {
		got, err := ParseHexColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseHexColor(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsWatchedFile(t *testing.T) {
	tests := map[string]bool{
		"prefabs/player.yaml":         true,
		"prefabs/scripts/slime.tengo": true,
		"levels/level1.JSON":          true,
		"assets/coin.png":             false,
		"notes.txt":                   false,
	}
	for path, want := range tests {
		if got := IsWatchedFile(path); got != want {
			t.Fatalf("IsWatchedFile(%q) = %v, want %v", path, got, want)
		}
	}
}
