// Package palette crossfades the rail color between two endpoints.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultCycle = 5.0 // seconds per sweep from one endpoint to the other

type RGB struct {
	R, G, B uint8
}

var (
	Cyan    = RGB{0, 201, 255}
	Magenta = RGB{255, 0, 214}
)

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Floats returns the channels in [0, 1].
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// ParseHex accepts "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("palette: invalid hex color %q: %w", s, err)
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Lerp interpolates each channel and rounds to the nearest integer.
func Lerp(a, b RGB, t float64) RGB {
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB{ch(a.R, b.R), ch(a.G, b.G), ch(a.B, b.B)}
}

// Crossfader ping-pongs a mix value between 0 and 1.
type Crossfader struct {
	A, B  RGB
	Cycle float64

	mix float64
	dir float64
}

func NewCrossfader(a, b RGB, cycle float64) *Crossfader {
	if cycle <= 0 {
		cycle = DefaultCycle
	}
	return &Crossfader{A: a, B: b, Cycle: cycle, dir: 1}
}

// Advance moves the mix by dt/Cycle in the current direction, reflecting at
// the bounds, and returns the resulting color.
func (c *Crossfader) Advance(dt float64) RGB {
	c.mix += dt / c.Cycle * c.dir

	if c.mix >= 1 {
		c.mix = 1
		c.dir = -1
	} else if c.mix <= 0 {
		c.mix = 0
		c.dir = 1
	}

	return c.Color()
}

func (c *Crossfader) Color() RGB   { return Lerp(c.A, c.B, c.mix) }
func (c *Crossfader) Mix() float64 { return c.mix }
func (c *Crossfader) Dir() int     { return int(c.dir) }
