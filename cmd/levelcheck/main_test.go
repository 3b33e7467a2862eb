package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/levels"
)

func TestMain(m *testing.M) {
	entity.Headless()
	os.Exit(m.Run())
}

func TestCheckEmbeddedLevels(t *testing.T) {
	known := map[string]bool{}
	for _, n := range levels.Names() {
		known[n] = true
	}
	for name := range known {
		t.Run(name, func(t *testing.T) {
			r := check(name, known)
			if len(r.errs) > 0 || len(r.warnings) > 0 {
				t.Fatalf("errors %v warnings %v", r.errs, r.warnings)
			}
		})
	}
}

func TestCheckFile(t *testing.T) {
	const base = `"width":10,"height":5,"tile_size":32,"player_start":{"x":48,"y":96},"platforms":[{"x":0,"y":4,"w":10,"h":1}],"goal":{"x":256,"y":96}`
	tests := []struct {
		name         string
		extra        string
		wantErr      string
		wantWarnings int
	}{
		{"clean", `"enemies":[{"type":"slime","x":160,"y":117}],"powerups":[{"type":"coin","x":100,"y":96}]`, "", 0},
		{"unknown_types", `"enemies":[{"type":"bat","x":160,"y":96}],"powerups":[{"type":"gem","x":100,"y":96}]`, "", 2},
		{"spawn_outside", `"enemies":[{"type":"slime","x":900,"y":96}]`, "", 1},
		{"missing_next", `"next":"nowhere"`, `next level "nowhere"`, 0},
		{"no_platforms", `"platforms":[]`, "no platforms", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name+".json")
			if err := os.WriteFile(path, []byte("{"+base+","+tc.extra+"}"), 0o644); err != nil {
				t.Fatal(err)
			}

			r := check(path, map[string]bool{})
			if r.name != tc.name {
				t.Fatalf("report name = %q, want %q", r.name, tc.name)
			}
			if len(r.warnings) != tc.wantWarnings {
				t.Fatalf("warnings = %v, want %d", r.warnings, tc.wantWarnings)
			}
			if tc.wantErr == "" {
				if len(r.errs) > 0 {
					t.Fatalf("unexpected errors %v", r.errs)
				}
				return
			}
			if len(r.errs) != 1 || !strings.Contains(r.errs[0], tc.wantErr) {
				t.Fatalf("errors = %v, want one containing %q", r.errs, tc.wantErr)
			}
		})
	}
}
