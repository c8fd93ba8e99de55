package sim

import (
	"time"

	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/palette"
	"github.com/san-kum/gleam/internal/render"
)

type Metric interface {
	Name() string
	Observe(f intro.Frame)
	Value() float64
	Reset()
}

// Sample is the per-frame row a trace records.
type Sample struct {
	Frame    uint64
	T        float64 // seconds since the run started
	Dt       float64
	Phase    intro.Phase
	Run      int
	HeadX    float64
	HeadY    float64
	VelX     float64
	VelY     float64
	TargetX  float64
	TargetY  float64
	TrailLen int
	Mix      float64
	Color    palette.RGB
}

func SampleOf(f intro.Frame) Sample {
	return Sample{
		Frame:    f.Seq,
		T:        f.Now.Seconds(),
		Dt:       f.Dt,
		Phase:    f.Phase,
		Run:      f.Run,
		HeadX:    f.Head.X,
		HeadY:    f.Head.Y,
		VelX:     f.Vel.X,
		VelY:     f.Vel.Y,
		TargetX:  f.Target.X,
		TargetY:  f.Target.Y,
		TrailLen: len(f.Trail),
		Mix:      f.Mix,
		Color:    f.Color,
	}
}

// CarveSegments splits samples into the head y series of each carve
// stretch. A new segment starts whenever the run changes or the head
// re-enters carve.
func CarveSegments(samples []Sample) [][]float64 {
	var (
		segs [][]float64
		cur  []float64
		run  = -1
	)
	for _, s := range samples {
		if s.Phase != intro.Carve || s.Run != run {
			if len(cur) > 0 {
				segs = append(segs, cur)
			}
			cur = nil
			run = s.Run
		}
		if s.Phase == intro.Carve {
			cur = append(cur, s.HeadY)
		}
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

type Config struct {
	Viewport      intro.Viewport
	FrameInterval time.Duration
	Duration      time.Duration
	Seed          int64
	Tuning        intro.Tuning
	Style         render.Style
	ValidateState bool
	// Realtime paces frames on a wall-clock ticker instead of the
	// synthetic clock. Frame count then depends on the host.
	Realtime bool
}

func DefaultConfig() Config {
	return Config{
		Viewport:      intro.NewViewport(1280, 720, 1),
		FrameInterval: time.Second / 60,
		Duration:      20 * time.Second,
		Seed:          1,
		Tuning:        intro.DefaultTuning(),
		Style:         render.DefaultStyle(),
		ValidateState: true,
	}
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Frames  int
	Runs    int
	Last    intro.Frame
	Errors  []error
}
