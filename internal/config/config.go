package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/palette"
	"github.com/san-kum/gleam/internal/render"
	"github.com/san-kum/gleam/internal/steer"
)

const (
	DefaultRunDuration   = 6.0
	DefaultTargetTimeout = 1.2
	DefaultReachRadius   = 70.0
	DefaultRailGap       = 34.0
	DefaultFade          = 0.10
)

// Config is the on-disk tuning file. Seconds are plain floats; pauses and
// delays are duration strings such as "250ms".
type Config struct {
	Speed         float64       `yaml:"speed"`
	SteerPerSec   float64       `yaml:"steer_per_sec"`
	MaxTrail      int           `yaml:"max_trail"`
	RailGap       float64       `yaml:"rail_gap"`
	RunDuration   float64       `yaml:"run_duration"`
	ClearPause    time.Duration `yaml:"clear_pause"`
	TargetTimeout float64       `yaml:"target_timeout"`
	ReachRadius   float64       `yaml:"reach_radius"`
	Fade          float64       `yaml:"fade"`
	ColorCycle    float64       `yaml:"color_cycle"`
	ColorA        string        `yaml:"color_a"`
	ColorB        string        `yaml:"color_b"`
	EnterDelay    time.Duration `yaml:"enter_delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Speed:         steer.DefaultSpeed,
		SteerPerSec:   steer.DefaultSteerPerSec,
		MaxTrail:      steer.DefaultMaxTrail,
		RailGap:       DefaultRailGap,
		RunDuration:   DefaultRunDuration,
		TargetTimeout: DefaultTargetTimeout,
		ReachRadius:   DefaultReachRadius,
		Fade:          DefaultFade,
		ColorCycle:    palette.DefaultCycle,
		ColorA:        palette.Cyan.Hex(),
		ColorB:        palette.Magenta.Hex(),
		EnterDelay:    intro.DefaultEnterDelay,
	}
}

// Load reads a YAML file over the defaults, so a partial file keeps the
// defaults for every field it omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"speed", c.Speed > 0},
		{"steer_per_sec", c.SteerPerSec > 0},
		{"max_trail", c.MaxTrail >= 3},
		{"rail_gap", c.RailGap >= 0},
		{"run_duration", c.RunDuration > 0},
		{"clear_pause", c.ClearPause >= 0},
		{"target_timeout", c.TargetTimeout > 0},
		{"reach_radius", c.ReachRadius > 0},
		{"fade", c.Fade >= 0 && c.Fade <= 1},
		{"color_cycle", c.ColorCycle > 0},
		{"enter_delay", c.EnterDelay >= 0},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%s: %w", chk.name, dynamo.ErrParameterBounds)
		}
	}

	if _, err := palette.ParseHex(c.ColorA); err != nil {
		return fmt.Errorf("color_a: %w", err)
	}
	if _, err := palette.ParseHex(c.ColorB); err != nil {
		return fmt.Errorf("color_b: %w", err)
	}
	return nil
}

// Tuning converts the file values into simulation constants. Colors that
// fail to parse fall back to the defaults; Validate reports them.
func (c *Config) Tuning() intro.Tuning {
	tun := intro.Tuning{
		Speed:         c.Speed,
		SteerPerSec:   c.SteerPerSec,
		MaxTrail:      c.MaxTrail,
		RunDuration:   c.RunDuration,
		ClearPause:    c.ClearPause,
		TargetTimeout: c.TargetTimeout,
		ReachRadius:   c.ReachRadius,
		ColorCycle:    c.ColorCycle,
		ColorA:        palette.Cyan,
		ColorB:        palette.Magenta,
	}
	if a, err := palette.ParseHex(c.ColorA); err == nil {
		tun.ColorA = a
	}
	if b, err := palette.ParseHex(c.ColorB); err == nil {
		tun.ColorB = b
	}
	return tun
}

func (c *Config) Style() render.Style {
	st := render.DefaultStyle()
	st.RailGap = c.RailGap
	st.Fade = c.Fade
	return st
}

func (c *Config) Props(onFinish func()) intro.Props {
	return intro.Props{OnFinish: onFinish, EnterDelay: intro.ExplicitEnterDelay(c.EnterDelay)}
}
