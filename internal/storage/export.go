package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gleam/internal/sim"
)

type ExportData struct {
	Preset  string             `json:"preset"`
	Seed    int64              `json:"seed"`
	Width   float64            `json:"width"`
	Height  float64            `json:"height"`
	Frames  int                `json:"frames"`
	Runs    int                `json:"runs"`
	Samples []sim.Sample       `json:"samples"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a whole trace as one JSON document.
func ExportJSON(w io.Writer, preset string, cfg sim.Config, result *sim.Result) error {
	data := ExportData{
		Preset:  preset,
		Seed:    cfg.Seed,
		Width:   cfg.Viewport.W,
		Height:  cfg.Viewport.H,
		Frames:  result.Frames,
		Runs:    result.Runs,
		Samples: result.Samples,
		Metrics: result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
