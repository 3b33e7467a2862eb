package levels

import (
	"errors"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantNext string
	}{
		{"bare_name", "level1", "level1", "level2"},
		{"with_extension", "level1.json", "level1", "level2"},
		{"with_dir", "levels/level2.json", "level2", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Load(tc.input)
			if err != nil {
				t.Fatalf("Load(%q): %v", tc.input, err)
			}
			if lvl.ID != tc.wantID {
				t.Fatalf("ID = %q, want %q", lvl.ID, tc.wantID)
			}
			if lvl.Next != tc.wantNext {
				t.Fatalf("Next = %q, want %q", lvl.Next, tc.wantNext)
			}
			if len(lvl.Enemies) == 0 || len(lvl.PowerUps) == 0 {
				t.Fatalf("expected enemies and powerups in %s", lvl.ID)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatalf("expected error for missing level")
	}
	if _, err := Load(""); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel for empty name, got %v", err)
	}
}

func TestParseValidation(t *testing.T) {
	const platform = `"platforms":[{"x":0,"y":9,"w":10,"h":1}]`
	tests := []struct {
		name    string
		json    string
		invalid bool
	}{
		{"ok", `{"width":10,"height":10,` + platform + `,"player_start":{"x":10,"y":10},"goal":{"x":300,"y":200}}`, false},
		{"zero_size", `{"width":0,"height":10,` + platform + `}`, true},
		{"no_platforms", `{"width":10,"height":10,"platforms":[]}`, true},
		{"bad_platform", `{"width":10,"height":10,"platforms":[{"x":0,"y":0,"w":0,"h":1}]}`, true},
		{"goal_outside", `{"width":10,"height":10,` + platform + `,"goal":{"x":500,"y":10}}`, true},
		{"start_outside", `{"width":10,"height":10,` + platform + `,"player_start":{"x":-5,"y":10}}`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.json))
			if tc.invalid != errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("Parse error = %v, want invalid=%v", err, tc.invalid)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	lvl, err := Parse([]byte(`{"width":4,"height":3,"platforms":[{"x":0,"y":2,"w":4,"h":1}],"next":"level9.json"}`))
	if err != nil {
		t.Fatal(err)
	}
	if lvl.TileSize != DefaultTileSize {
		t.Fatalf("TileSize = %d, want %d", lvl.TileSize, DefaultTileSize)
	}
	if lvl.Next != "level9" {
		t.Fatalf("Next = %q, want level9", lvl.Next)
	}
	if w, h := lvl.Bounds(); w != 128 || h != 96 {
		t.Fatalf("Bounds = %vx%v, want 128x96", w, h)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"width":`))
	if err == nil || errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) < 2 || names[0] != "level1" || names[1] != "level2" {
		t.Fatalf("Names() = %v", names)
	}
}
