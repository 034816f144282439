package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/driftfield/fluid"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Screen.Width != 1920 || cfg.Screen.Height != 1080 {
		t.Errorf("expected 1920x1080 screen, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Physics.Damping != 0.96 {
		t.Errorf("expected damping 0.96, got %v", cfg.Physics.Damping)
	}
	if cfg.Physics.Gravity != -49.0 {
		t.Errorf("expected gravity -49.0, got %v", cfg.Physics.Gravity)
	}
	if cfg.Interaction.Enabled {
		t.Error("interaction must be disabled by default")
	}
	if cfg.Input.AttractStrength != -300 || cfg.Input.RepelStrength != 300 || cfg.Input.Radius != 300 {
		t.Errorf("unexpected input defaults: %+v", cfg.Input)
	}

	// Field defaults to screen size
	if cfg.Derived.FieldW != 1920 || cfg.Derived.FieldH != 1080 {
		t.Errorf("expected derived field 1920x1080, got %dx%d", cfg.Derived.FieldW, cfg.Derived.FieldH)
	}
	if cfg.Derived.DT32 != float32(0.016) {
		t.Errorf("expected DT32 0.016, got %v", cfg.Derived.DT32)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("render:\n  blur_passes: 0\nfield:\n  width: 640\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Render.BlurPasses != 0 {
		t.Errorf("expected blur passes 0, got %d", cfg.Render.BlurPasses)
	}
	if cfg.Derived.FieldW != 640 {
		t.Errorf("expected field width 640, got %d", cfg.Derived.FieldW)
	}
	// Untouched values keep their defaults
	if cfg.Render.Alpha != 0.7 {
		t.Errorf("expected alpha 0.7 from defaults, got %v", cfg.Render.Alpha)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative blur passes", "render:\n  blur_passes: -1\n"},
		{"zero spacing", "field:\n  spacing: 0\n"},
		{"zero screen", "screen:\n  width: 0\n"},
		{"interaction without radius", "interaction:\n  enabled: true\n  radius: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Render.BlurPasses = 5

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if loaded.Render.BlurPasses != 5 {
		t.Errorf("expected blur passes 5 after reload, got %d", loaded.Render.BlurPasses)
	}
}

func TestDomainConversions(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	p := cfg.FieldParams()
	if p.Spacing != 5 || p.Damping != float32(0.96) || p.Gravity != -49 || p.MaxSpeedHint != 10 {
		t.Errorf("unexpected field params: %+v", p)
	}
	if p.Interaction != nil {
		t.Error("expected no interaction from FieldParams")
	}

	pal := cfg.Palette()
	if pal.Slow.G != 1 || pal.Slow.R != 0 || pal.Fast.R != 1 || pal.Fast.B != 1 {
		t.Errorf("unexpected palette: %+v", pal)
	}
	if pal.Alpha != float32(0.7) {
		t.Errorf("expected alpha 0.7, got %v", pal.Alpha)
	}
	if c := cfg.ClearColor(); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("expected black clear color, got %+v", c)
	}
}

func TestFieldParamsForInteraction(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if p := cfg.FieldParamsFor(200, 100); p.Interaction != nil {
		t.Errorf("interaction disabled by default, got %T", p.Interaction)
	}

	cfg.Interaction.Enabled = true
	cfg.Interaction.Radius = 20
	cfg.Interaction.Scale = 4
	p := cfg.FieldParamsFor(200, 100)
	r, ok := p.Interaction.(*fluid.Repulsion)
	if !ok {
		t.Fatalf("expected *fluid.Repulsion, got %T", p.Interaction)
	}
	if r.Radius != 20 || r.Scale != 4 {
		t.Errorf("unexpected repulsion parameters: radius=%v scale=%v", r.Radius, r.Scale)
	}
	if p.Spacing != 5 || p.Damping != float32(0.96) {
		t.Errorf("physics params should match FieldParams, got %+v", p)
	}
}
