package render

import (
	"github.com/san-kum/gleam/internal/intro"
)

// Layer is one rail pass: a thin bright core or a wide soft glow.
type Layer struct {
	Width float64
	Blur  float64
	Alpha float64
}

type Style struct {
	RailGap       float64
	Fade          float64
	VignetteAlpha float64
	Core          Layer
	Glow          Layer
}

func DefaultStyle() Style {
	return Style{
		RailGap:       34,
		Fade:          0.10,
		VignetteAlpha: 0.55,
		Core:          Layer{Width: 2.2, Blur: 18, Alpha: 0.75},
		Glow:          Layer{Width: 6.0, Blur: 32, Alpha: 0.22},
	}
}

// Renderer implements intro.Painter on top of a Surface.
type Renderer struct {
	surface Surface
	style   Style
	vp      intro.Viewport
}

func NewRenderer(s Surface, style Style) *Renderer {
	if s == nil {
		s = Discard
	}
	return &Renderer{surface: s, style: style}
}

func (r *Renderer) Surface() Surface { return r.surface }
func (r *Renderer) Style() Style     { return r.style }

// Resize sizes the backing surface and fills it with the background.
func (r *Renderer) Resize(vp intro.Viewport) error {
	if err := r.surface.Resize(int(vp.W), int(vp.H), vp.DPR); err != nil {
		return err
	}
	r.vp = vp
	r.surface.Clear()
	return nil
}

// Paint composites one frame. Hard clears only happen when the frame asks
// for one; every other frame fades the previous image.
func (r *Renderer) Paint(f intro.Frame) {
	if f.Blank {
		r.surface.Clear()
		return
	}

	r.surface.Fade(r.style.Fade)
	if f.HardClear {
		r.surface.Clear()
	}

	r.drawRails(f)
	r.surface.Vignette(VignetteFor(f.Viewport, r.style.VignetteAlpha))
}

func (r *Renderer) drawRails(f intro.Frame) {
	if len(f.Trail) < minRailSamples {
		return
	}

	r.surface.BeginAdditive()
	defer r.surface.EndAdditive()

	for _, layer := range []Layer{r.style.Core, r.style.Glow} {
		st := Stroke{Color: f.Color, Alpha: layer.Alpha, Width: layer.Width, Blur: layer.Blur}
		for _, side := range []float64{-1, 1} {
			r.surface.StrokePath(RailPath(f.Trail, r.style.RailGap, side), st)
		}
	}
}
