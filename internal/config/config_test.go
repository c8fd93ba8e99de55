package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/palette"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Speed != 620 {
		t.Errorf("expected speed 620, got %v", cfg.Speed)
	}
	if cfg.EnterDelay != time.Second {
		t.Errorf("expected enter delay 1s, got %v", cfg.EnterDelay)
	}

	tun := cfg.Tuning()
	if tun != intro.DefaultTuning() {
		t.Errorf("default config tuning %+v differs from DefaultTuning", tun)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("frantic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Speed != 980 {
		t.Errorf("expected speed 980, got %v", cfg.Speed)
	}
	if cfg.ColorA != palette.Cyan.Hex() {
		t.Errorf("preset should keep unspecified defaults, color_a = %s", cfg.ColorA)
	}

	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"calm", "classic", "frantic", "slowmo"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"negative steer", func(c *Config) { c.SteerPerSec = -1 }},
		{"tiny trail", func(c *Config) { c.MaxTrail = 2 }},
		{"fade above one", func(c *Config) { c.Fade = 1.5 }},
		{"negative pause", func(c *Config) { c.ClearPause = -time.Millisecond }},
		{"negative delay", func(c *Config) { c.EnterDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.ColorB = "#zzzzzz"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad color")
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gleam.yaml")

	cfg := GetPreset("slowmo")
	cfg.ColorB = "#ff8800"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
	if loaded.Tuning().ColorB != (palette.RGB{R: 0xff, G: 0x88, B: 0}) {
		t.Errorf("color_b = %v", loaded.Tuning().ColorB)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "speed: 500\nclear_pause: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Speed != 500 || cfg.ClearPause != 250*time.Millisecond {
		t.Errorf("got speed %v pause %v", cfg.Speed, cfg.ClearPause)
	}
	if cfg.MaxTrail != 90 {
		t.Errorf("omitted field should keep default, max_trail = %d", cfg.MaxTrail)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("speed: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnterDelayZeroShowsAtMount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instant.yaml")
	if err := os.WriteFile(path, []byte("enter_delay: 0s\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	gate, err := intro.NewSkipGate(cfg.Props(func() {}), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !gate.Visible(0) {
		t.Errorf("enter_delay 0 should show the button at mount, delay = %v", gate.Delay())
	}

	gate, err = intro.NewSkipGate(DefaultConfig().Props(func() {}), 0)
	if err != nil {
		t.Fatal(err)
	}
	if gate.Delay() != intro.DefaultEnterDelay {
		t.Errorf("default delay = %v", gate.Delay())
	}
}
