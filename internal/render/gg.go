package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/san-kum/gleam/internal/dynamo"
)

// glowPasses approximate a gaussian shadow: each pass is wider and fainter.
var glowPasses = []struct{ spread, alpha float64 }{
	{1.0, 0.12},
	{0.6, 0.20},
	{0.3, 0.35},
}

// GGSurface rasterizes into a gogpu/gg context at w*dpr by h*dpr device
// pixels. The first drawing error is kept and reported by Err.
type GGSurface struct {
	dc     *gg.Context
	w, h   int
	dpr    float64
	layers int
	err    error
}

func NewGGSurface() *GGSurface {
	return &GGSurface{dpr: 1}
}

func (s *GGSurface) Resize(w, h int, dpr float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", dynamo.ErrInvalidViewport, w, h)
	}
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}

	pw := int(math.Floor(float64(w) * dpr))
	ph := int(math.Floor(float64(h) * dpr))
	if s.dc == nil {
		s.dc = gg.NewContext(pw, ph)
	} else if err := s.dc.Resize(pw, ph); err != nil {
		return err
	}

	s.w, s.h, s.dpr = w, h, dpr
	s.dc.Identity()
	s.dc.Scale(dpr, dpr)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	return nil
}

func (s *GGSurface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.ClearWithColor(gg.Black)
}

func (s *GGSurface) Fade(alpha float64) {
	if s.dc == nil || alpha <= 0 {
		return
	}
	s.dc.SetRGBA(0, 0, 0, dynamo.Clamp(alpha, 0, 1))
	s.dc.DrawRectangle(0, 0, float64(s.w), float64(s.h))
	s.record(s.dc.Fill())
}

func (s *GGSurface) BeginAdditive() {
	if s.dc == nil {
		return
	}
	s.dc.PushLayer(gg.BlendScreen, 1.0)
	s.layers++
}

func (s *GGSurface) EndAdditive() {
	if s.dc == nil || s.layers == 0 {
		return
	}
	s.dc.PopLayer()
	s.layers--
}

func (s *GGSurface) StrokePath(pts []dynamo.Vec2, st Stroke) {
	if s.dc == nil || len(pts) < 2 {
		return
	}
	r, g, b := st.Color.Floats()

	if st.Blur > 0 {
		for _, p := range glowPasses {
			s.trace(pts)
			s.dc.SetLineWidth(st.Width + st.Blur*p.spread)
			s.dc.SetRGBA(r, g, b, st.Alpha*p.alpha)
			s.record(s.dc.Stroke())
		}
	}

	s.trace(pts)
	s.dc.SetLineWidth(st.Width)
	s.dc.SetRGBA(r, g, b, st.Alpha)
	s.record(s.dc.Stroke())
}

func (s *GGSurface) trace(pts []dynamo.Vec2) {
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
}

// Vignette fills the surface with a radial gradient. Brushes are sampled in
// device pixels, so the gradient geometry is scaled by dpr.
func (s *GGSurface) Vignette(v Vignette) {
	if s.dc == nil || v.Alpha <= 0 {
		return
	}
	d := s.dpr
	brush := gg.NewRadialGradientBrush(v.Outer.X*d, v.Outer.Y*d, v.R0*d, v.R1*d).
		SetFocus(v.Inner.X*d, v.Inner.Y*d).
		AddColorStop(0, gg.Transparent).
		AddColorStop(1, gg.RGBA2(0, 0, 0, v.Alpha))

	s.dc.SetFillBrush(brush)
	s.dc.DrawRectangle(0, 0, float64(s.w), float64(s.h))
	s.record(s.dc.Fill())
}

func (s *GGSurface) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first drawing error since the surface was created.
func (s *GGSurface) Err() error { return s.err }

var errNoContext = errors.New("render: surface not sized")

func (s *GGSurface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

func (s *GGSurface) SavePNG(path string) error {
	if s.dc == nil {
		return errNoContext
	}
	return s.dc.SavePNG(path)
}

func (s *GGSurface) EncodePNG(w io.Writer) error {
	if s.dc == nil {
		return errNoContext
	}
	return s.dc.EncodePNG(w)
}

func (s *GGSurface) Close() error {
	if s.dc == nil {
		return nil
	}
	return s.dc.Close()
}
