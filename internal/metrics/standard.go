package metrics

import "github.com/san-kum/gleam/internal/sim"

// Standard is the metric set a trace run evaluates.
func Standard(speed float64) []sim.Metric {
	return []sim.Metric{
		NewSpeedDeviation(speed),
		NewTrailPeak(),
		NewRuns(),
		NewExits(),
		NewRetargets(),
	}
}
