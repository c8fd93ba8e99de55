package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/palette"
)

// Braille cells are 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800

	// DefaultCellW and DefaultCellH are the logical pixels one terminal
	// cell stands for.
	DefaultCellW = 8
	DefaultCellH = 16

	litThreshold = 0.12
)

// BrailleSurface keeps a light intensity per braille dot and a color per
// cell. Vignette is applied when the grid is read rather than baked in, so
// repeated frames do not darken the whole grid.
type BrailleSurface struct {
	CellW, CellH int

	cols, rows int
	w, h       int
	sx, sy     float64 // logical px to dots

	light    []float64 // (cols*2) x (rows*4)
	colors   []palette.RGB
	additive bool
	vignette Vignette
}

func NewBrailleSurface() *BrailleSurface {
	return &BrailleSurface{CellW: DefaultCellW, CellH: DefaultCellH}
}

// Resize sizes the grid from logical pixels. DPR has no meaning for cells.
func (s *BrailleSurface) Resize(w, h int, _ float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", dynamo.ErrInvalidViewport, w, h)
	}
	cw, ch := max(s.CellW, 1), max(s.CellH, 1)
	s.cols = max(w/cw, 1)
	s.rows = max(h/ch, 1)
	s.w, s.h = w, h
	s.sx = float64(s.cols*2) / float64(w)
	s.sy = float64(s.rows*4) / float64(h)
	s.light = make([]float64, s.cols*2*s.rows*4)
	s.colors = make([]palette.RGB, s.cols*s.rows)
	s.vignette = Vignette{}
	return nil
}

// Cells returns the grid size in terminal cells.
func (s *BrailleSurface) Cells() (cols, rows int) { return s.cols, s.rows }

func (s *BrailleSurface) Clear() {
	clear(s.light)
}

func (s *BrailleSurface) Fade(alpha float64) {
	k := 1 - dynamo.Clamp(alpha, 0, 1)
	for i := range s.light {
		s.light[i] *= k
	}
}

func (s *BrailleSurface) BeginAdditive() { s.additive = true }
func (s *BrailleSurface) EndAdditive()   { s.additive = false }

func (s *BrailleSurface) StrokePath(pts []dynamo.Vec2, st Stroke) {
	if len(s.light) == 0 || len(pts) < 2 {
		return
	}
	prev := s.toDot(pts[0])
	for _, p := range pts[1:] {
		cur := s.toDot(p)
		s.line(prev[0], prev[1], cur[0], cur[1], st)
		prev = cur
	}
}

func (s *BrailleSurface) Vignette(v Vignette) { s.vignette = v }

func (s *BrailleSurface) toDot(p dynamo.Vec2) [2]int {
	return [2]int{int(math.Floor(p.X * s.sx)), int(math.Floor(p.Y * s.sy))}
}

// line walks the dots between two points with Bresenham's algorithm.
func (s *BrailleSurface) line(x0, y0, x1, y1 int, st Stroke) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		s.plot(x0, y0, st)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *BrailleSurface) plot(x, y int, st Stroke) {
	dw, dh := s.cols*2, s.rows*4
	if x < 0 || y < 0 || x >= dw || y >= dh {
		return
	}
	i := y*dw + x
	if s.additive {
		s.light[i] = math.Min(1, s.light[i]+st.Alpha)
	} else {
		s.light[i] = math.Max(s.light[i], st.Alpha)
	}
	s.colors[(y/4)*s.cols+x/2] = st.Color
}

// Intensity returns the stored light at a dot before the vignette.
func (s *BrailleSurface) Intensity(x, y int) float64 {
	dw := s.cols * 2
	if x < 0 || y < 0 || x >= dw || y >= s.rows*4 {
		return 0
	}
	return s.light[y*dw+x]
}

// shade is the vignette multiplier at a logical point, measured from the
// inner circle's center.
func (s *BrailleSurface) shade(p dynamo.Vec2) float64 {
	v := s.vignette
	if v.Alpha <= 0 || v.R1 <= v.R0 {
		return 1
	}
	t := dynamo.Clamp((p.Dist(v.Inner)-v.R0)/(v.R1-v.R0), 0, 1)
	return 1 - v.Alpha*t
}

// CellColor is the color of the last stroke that touched a cell.
func (s *BrailleSurface) CellColor(col, row int) palette.RGB {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return palette.RGB{}
	}
	return s.colors[row*s.cols+col]
}

// Rune returns the braille glyph for a cell.
func (s *BrailleSurface) Rune(col, row int) rune {
	r := rune(brailleBase)
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return r
	}
	center := dynamo.V((float64(col)+0.5)*float64(s.w)/float64(s.cols),
		(float64(row)+0.5)*float64(s.h)/float64(s.rows))
	k := s.shade(center)
	for dy := range 4 {
		for dx := range 2 {
			if s.Intensity(col*2+dx, row*4+dy)*k >= litThreshold {
				r |= dotBits[dy][dx]
			}
		}
	}
	return r
}

// String renders the grid with one lipgloss style per run of equal color.
func (s *BrailleSurface) String() string {
	var b strings.Builder
	for row := range s.rows {
		var run strings.Builder
		var runColor palette.RGB
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runColor.Hex()))
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for col := range s.cols {
			c := s.colors[row*s.cols+col]
			if c != runColor {
				flush()
				runColor = c
			}
			run.WriteRune(s.Rune(col, row))
		}
		flush()
		if row < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
