package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/gleam/internal/intro"
)

// ImageSource is anything that can hand out its current raster, such as
// render.GGSurface.
type ImageSource interface {
	Image() image.Image
}

// GIFRecorder is an intro.Observer that grabs the surface after every
// Every-th frame and quantizes it to the web-safe palette.
type GIFRecorder struct {
	src    ImageSource
	every  int
	delay  int // 1/100 s
	seen   int
	frames []*image.Paletted
	delays []int
}

func NewGIFRecorder(src ImageSource, every, delay int) *GIFRecorder {
	return &GIFRecorder{src: src, every: max(every, 1), delay: max(delay, 1)}
}

func (g *GIFRecorder) OnFrame(intro.Frame) {
	g.seen++
	if (g.seen-1)%g.every != 0 {
		return
	}
	img := g.src.Image()
	if img == nil {
		return
	}

	pal := make(color.Palette, 0, len(palette.WebSafe)+1)
	pal = append(pal, color.Black)
	pal = append(pal, palette.WebSafe...)

	dst := image.NewPaletted(img.Bounds(), pal)
	draw.FloydSteinberg.Draw(dst, img.Bounds(), img, img.Bounds().Min)
	g.frames = append(g.frames, dst)
	g.delays = append(g.delays, g.delay)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

// Encode writes a looping GIF of every captured frame.
func (g *GIFRecorder) Encode(w io.Writer) error {
	anim := gif.GIF{
		Image:     g.frames,
		Delay:     g.delays,
		LoopCount: 0,
	}
	return gif.EncodeAll(w, &anim)
}
