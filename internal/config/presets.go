package config

import (
	"sort"
	"time"
)

// Presets are named variations on the default tuning.
var Presets = map[string]func(*Config){
	"classic": func(*Config) {},
	"calm": func(c *Config) {
		c.Speed = 380
		c.SteerPerSec = 1.8
		c.RunDuration = 9
		c.TargetTimeout = 2.0
		c.ColorCycle = 8
		c.Fade = 0.06
	},
	"frantic": func(c *Config) {
		c.Speed = 980
		c.SteerPerSec = 5.5
		c.MaxTrail = 60
		c.RunDuration = 4
		c.TargetTimeout = 0.8
		c.ColorCycle = 2
		c.Fade = 0.16
	},
	"slowmo": func(c *Config) {
		c.Speed = 240
		c.SteerPerSec = 1.2
		c.MaxTrail = 140
		c.RunDuration = 12
		c.TargetTimeout = 3.0
		c.ClearPause = 400 * time.Millisecond
		c.ColorCycle = 10
		c.Fade = 0.04
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
