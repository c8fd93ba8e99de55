// Package render paints intro frames: a motion-blur fade, two tapered
// glowing rails offset from the head's path, and a vignette.
//
// Drawing goes through the [Surface] port. [GGSurface] rasterizes with
// gogpu/gg for PNG and GIF output; [BrailleSurface] paints terminal cells.
package render

import (
	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/palette"
)

// Stroke describes one rail pass.
type Stroke struct {
	Color palette.RGB
	Alpha float64
	Width float64 // logical px
	Blur  float64 // glow radius, logical px
}

// Vignette is a two-circle radial gradient from transparent at Inner/R0 to
// black at Alpha on Outer/R1.
type Vignette struct {
	Inner dynamo.Vec2
	Outer dynamo.Vec2
	R0    float64
	R1    float64
	Alpha float64
}

// Surface is the drawing port. Coordinates are logical pixels; the surface
// owns the mapping to its backing store.
type Surface interface {
	Resize(w, h int, dpr float64) error
	// Clear wipes to the background color.
	Clear()
	// Fade composites a black rectangle of the given alpha over the surface.
	Fade(alpha float64)
	// BeginAdditive and EndAdditive bracket strokes that add light.
	BeginAdditive()
	EndAdditive()
	StrokePath(pts []dynamo.Vec2, st Stroke)
	Vignette(v Vignette)
}

type discard struct{}

func (discard) Resize(int, int, float64) error   { return nil }
func (discard) Clear()                           {}
func (discard) Fade(float64)                     {}
func (discard) BeginAdditive()                   {}
func (discard) EndAdditive()                     {}
func (discard) StrokePath([]dynamo.Vec2, Stroke) {}
func (discard) Vignette(Vignette)                {}

// Discard is a Surface that draws nothing, for headless traces.
var Discard Surface = discard{}
