package metrics

import "github.com/san-kum/gleam/internal/intro"

// TrailPeak is the longest trail any frame carried.
type TrailPeak struct {
	name string
	peak int
}

func NewTrailPeak() *TrailPeak {
	return &TrailPeak{name: "trail_peak"}
}

func (t *TrailPeak) Name() string { return t.name }

func (t *TrailPeak) Observe(f intro.Frame) {
	t.peak = max(t.peak, len(f.Trail))
}

func (t *TrailPeak) Value() float64 { return float64(t.peak) }
func (t *TrailPeak) Reset()         { t.peak = 0 }
