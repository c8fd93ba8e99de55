package intro

import (
	"time"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/palette"
	"github.com/san-kum/gleam/internal/steer"
)

// Frame is the state produced by one tick. The renderer and observers only
// ever see frames, never the live Animation.
type Frame struct {
	Seq      uint64
	Now      time.Duration
	Dt       float64
	Phase    Phase
	Run      int
	Viewport Viewport

	Head   dynamo.Vec2
	Vel    dynamo.Vec2
	Target dynamo.Vec2
	Trail  []steer.Sample

	Color palette.RGB
	Mix   float64

	// HardClear asks the painter to wipe the surface before compositing.
	HardClear bool
	// Blank frames belong to the clear phase: wipe and draw nothing else.
	Blank bool

	TimeSinceTarget float64
	RunElapsed      float64
	Waypoints       int
	Retargets       int
}

// Painter consumes frames. render.Renderer is the production painter.
type Painter interface {
	Resize(vp Viewport) error
	Paint(f Frame)
}

type Observer interface {
	OnFrame(f Frame)
}

type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }
