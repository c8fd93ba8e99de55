package render

import (
	"math"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/steer"
)

const minRailSamples = 3

// Taper is the rail offset scale at position i of n samples: 0.25 at the
// oldest sample rising linearly to 1 at the newest.
func Taper(i, n int) float64 {
	if n < 2 {
		return 1
	}
	t := float64(i) / float64(n-1)
	return 0.25 + 0.75*t
}

// RailPath offsets every trail sample perpendicular to its velocity by
// gap/2 * taper on the given side (-1 or +1). Trails shorter than three
// samples produce no rail.
func RailPath(trail []steer.Sample, gap, side float64) []dynamo.Vec2 {
	n := len(trail)
	if n < minRailSamples {
		return nil
	}

	pts := make([]dynamo.Vec2, n)
	for i, p := range trail {
		normal := p.Vel.Unit().Perp()
		off := gap * 0.5 * Taper(i, n) * side
		pts[i] = p.Pos.Add(normal.Scale(off))
	}
	return pts
}

// VignetteFor biases the clear spot slightly up and right of center.
func VignetteFor(vp intro.Viewport, alpha float64) Vignette {
	w, h := vp.W, vp.H
	return Vignette{
		Inner: dynamo.V(w*0.55, h*0.45),
		Outer: dynamo.V(w*0.5, h*0.5),
		R0:    math.Min(w, h) * 0.1,
		R1:    math.Max(w, h) * 0.8,
		Alpha: alpha,
	}
}
