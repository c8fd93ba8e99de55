package metrics

import (
	"math"

	"github.com/san-kum/gleam/internal/intro"
)

// SpeedDeviation is the largest |‖vel‖ - speed| seen on a moving frame.
// The steering step renormalizes every frame, so this stays near zero.
type SpeedDeviation struct {
	name    string
	speed   float64
	maxDev  float64
	samples int
}

func NewSpeedDeviation(speed float64) *SpeedDeviation {
	return &SpeedDeviation{
		name:  "speed_deviation",
		speed: speed,
	}
}

func (s *SpeedDeviation) Name() string { return s.name }

func (s *SpeedDeviation) Observe(f intro.Frame) {
	if f.Blank {
		return
	}
	dev := math.Abs(f.Vel.Len() - s.speed)
	s.maxDev = math.Max(s.maxDev, dev)
	s.samples++
}

func (s *SpeedDeviation) Value() float64 { return s.maxDev }

func (s *SpeedDeviation) Reset() {
	s.maxDev = 0
	s.samples = 0
}
