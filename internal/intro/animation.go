package intro

import (
	"log/slog"
	"time"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/palette"
	"github.com/san-kum/gleam/internal/steer"
)

// Phase is the run state. The zero value is Carve.
type Phase int

const (
	Carve Phase = iota
	Exit
	Clear
)

func (p Phase) String() string {
	switch p {
	case Carve:
		return "carve"
	case Exit:
		return "exit"
	case Clear:
		return "clear"
	default:
		return "unknown"
	}
}

// Tuning holds the simulation constants.
type Tuning struct {
	Speed         float64       // px/s
	SteerPerSec   float64       // heading time constant, 1/s
	MaxTrail      int           // samples
	RunDuration   float64       // seconds of carve before the forced exit
	ClearPause    time.Duration // blank time between exit and the next run
	TargetTimeout float64       // seconds before a waypoint is abandoned
	ReachRadius   float64       // px
	ColorCycle    float64       // seconds per crossfade sweep
	ColorA        palette.RGB
	ColorB        palette.RGB
}

func DefaultTuning() Tuning {
	return Tuning{
		Speed:         steer.DefaultSpeed,
		SteerPerSec:   steer.DefaultSteerPerSec,
		MaxTrail:      steer.DefaultMaxTrail,
		RunDuration:   6,
		ClearPause:    0,
		TargetTimeout: 1.2,
		ReachRadius:   70,
		ColorCycle:    palette.DefaultCycle,
		ColorA:        palette.Cyan,
		ColorB:        palette.Magenta,
	}
}

// Viewport is the logical drawing area. One simulation unit is one logical
// pixel; DPR only affects the backing surface.
type Viewport struct {
	W, H float64
	DPR  float64
}

// NewViewport floors the dimensions and clamps the pixel ratio to [1, 2].
func NewViewport(w, h, dpr float64) Viewport {
	if dpr == 0 {
		dpr = 1
	}
	return Viewport{
		W:   float64(int(w)),
		H:   float64(int(h)),
		DPR: dynamo.Clamp(dpr, 1, 2),
	}
}

func (v Viewport) Valid() bool { return v.W > 0 && v.H > 0 }

// durationSlack absorbs float drift when dt steps are summed up to the run
// duration.
const durationSlack = 1e-9

type Option func(*Animation)

func WithLogger(l *slog.Logger) Option {
	return func(a *Animation) {
		if l != nil {
			a.logger = l
		}
	}
}

// Animation is the phase state machine and the per-run state it drives.
type Animation struct {
	tun    Tuning
	rng    dynamo.Source
	ctrl   *steer.Controller
	trail  *steer.Trail
	colors *palette.Crossfader
	logger *slog.Logger

	vp       Viewport
	phase    Phase
	head     dynamo.Vec2
	vel      dynamo.Vec2
	target   dynamo.Vec2
	turnFlip float64

	timeSinceTarget float64
	runElapsed      float64
	clearUntil      time.Duration

	runs      int
	waypoints int
	retargets int
	seq       uint64
	hardClear bool
}

func NewAnimation(tun Tuning, rng dynamo.Source, opts ...Option) *Animation {
	a := &Animation{
		tun:      tun,
		rng:      rng,
		ctrl:     steer.NewController(tun.Speed, tun.SteerPerSec),
		trail:    steer.NewTrail(tun.MaxTrail),
		colors:   palette.NewCrossfader(tun.ColorA, tun.ColorB, tun.ColorCycle),
		logger:   slog.New(slog.DiscardHandler),
		turnFlip: 1,
		vel:      dynamo.V(tun.Speed, 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resize adopts a new viewport and restarts the run; in-flight carve
// progress is discarded.
func (a *Animation) Resize(vp Viewport) error {
	if !vp.Valid() {
		return dynamo.ErrInvalidViewport
	}
	a.vp = vp
	a.StartNewRun()
	return nil
}

// StartNewRun resets the per-run state and enters carve from off-screen left.
// The color crossfade keeps running.
func (a *Animation) StartNewRun() {
	w, h := a.vp.W, a.vp.H

	a.phase = Carve
	if a.rng.Float64() < 0.5 {
		a.turnFlip = -1
	} else {
		a.turnFlip = 1
	}

	a.timeSinceTarget = 0
	a.runElapsed = 0

	a.head = dynamo.V(-w*0.25, dynamo.Uniform(a.rng, h*0.35, h*0.65))
	a.vel = dynamo.V(a.tun.Speed, 0)

	a.trail.Reset()
	a.hardClear = true
	a.runs++

	a.pickNextCarveTarget()

	a.logger.Debug("run started", "run", a.runs, "head_y", a.head.Y, "turn", a.turnFlip)
}

// pickNextCarveTarget moves the waypoint forward and swings it to the other
// side of mid-height than the previous one.
func (a *Animation) pickNextCarveTarget() {
	w, h := a.vp.W, a.vp.H

	x := dynamo.Clamp(a.head.X+dynamo.Uniform(a.rng, w*0.18, w*0.42), w*0.15, w*0.92)

	center := h * 0.5
	band := h * 0.26
	y := dynamo.Clamp(center+a.turnFlip*dynamo.Uniform(a.rng, band*0.35, band), h*0.18, h*0.82)

	a.target = dynamo.V(x, y)
	a.turnFlip *= -1
	a.timeSinceTarget = 0
	a.waypoints++
}

// BeginExit aims the head past the right edge and enters the exit phase.
func (a *Animation) BeginExit() {
	w, h := a.vp.W, a.vp.H

	a.target = dynamo.V(
		max(w*1.35, a.head.X+w*0.6),
		dynamo.Clamp(a.head.Y+dynamo.Uniform(a.rng, -h*0.05, h*0.05), h*0.15, h*0.85),
	)
	a.phase = Exit
	a.timeSinceTarget = 0

	a.logger.Debug("phase", "run", a.runs, "to", Exit, "after", a.runElapsed)
}

func (a *Animation) offScreen() bool {
	return a.head.X > a.vp.W*1.25 || a.head.Y < -a.vp.H*0.2 || a.head.Y > a.vp.H*1.2
}

// Update advances one frame of dt seconds at driver time now.
func (a *Animation) Update(dt float64, now time.Duration) Frame {
	if a.phase == Clear {
		a.hardClear = true
		if now >= a.clearUntil {
			a.StartNewRun()
		}
		return a.snapshot(dt, now, true)
	}

	a.colors.Advance(dt)
	a.stepMotion(dt, now)
	return a.snapshot(dt, now, false)
}

func (a *Animation) stepMotion(dt float64, now time.Duration) {
	if a.phase == Carve {
		a.timeSinceTarget += dt
		a.runElapsed += dt

		if a.runElapsed >= a.tun.RunDuration-durationSlack {
			a.BeginExit()
		}
	}

	dist := a.head.Dist(a.target)

	a.head, a.vel = a.ctrl.Step(a.head, a.vel, a.target, dt)

	if a.phase == Carve {
		a.head = steer.ClampCarve(a.head, a.vp.W, a.vp.H)
	}

	if a.phase == Carve || a.phase == Exit {
		a.trail.Push(steer.Sample{Pos: a.head, Vel: a.vel})
	}

	if a.phase == Carve && dist < a.tun.ReachRadius {
		a.pickNextCarveTarget()
	}

	if a.phase == Carve && a.timeSinceTarget > a.tun.TargetTimeout {
		a.retargets++
		a.logger.Debug("waypoint timed out", "run", a.runs, "target_x", a.target.X, "target_y", a.target.Y)
		a.pickNextCarveTarget()
	}

	if a.phase == Exit && a.offScreen() {
		a.phase = Clear
		a.clearUntil = now + a.tun.ClearPause
		a.trail.Reset()
		a.hardClear = true

		a.logger.Debug("phase", "run", a.runs, "to", Clear)
	}
}

func (a *Animation) snapshot(dt float64, now time.Duration, blank bool) Frame {
	a.seq++
	f := Frame{
		Seq:             a.seq,
		Now:             now,
		Dt:              dt,
		Phase:           a.phase,
		Run:             a.runs,
		Viewport:        a.vp,
		Head:            a.head,
		Vel:             a.vel,
		Target:          a.target,
		Trail:           a.trail.Samples(),
		Color:           a.colors.Color(),
		Mix:             a.colors.Mix(),
		HardClear:       a.hardClear,
		Blank:           blank,
		TimeSinceTarget: a.timeSinceTarget,
		RunElapsed:      a.runElapsed,
		Waypoints:       a.waypoints,
		Retargets:       a.retargets,
	}
	a.hardClear = false
	return f
}

func (a *Animation) Phase() Phase                 { return a.phase }
func (a *Animation) Head() dynamo.Vec2            { return a.head }
func (a *Animation) Velocity() dynamo.Vec2        { return a.vel }
func (a *Animation) Target() dynamo.Vec2          { return a.target }
func (a *Animation) Trail() []steer.Sample        { return a.trail.Samples() }
func (a *Animation) TrailLen() int                { return a.trail.Len() }
func (a *Animation) Viewport() Viewport           { return a.vp }
func (a *Animation) Runs() int                    { return a.runs }
func (a *Animation) Retargets() int               { return a.retargets }
func (a *Animation) TimeSinceTarget() float64     { return a.timeSinceTarget }
func (a *Animation) RunElapsed() float64          { return a.runElapsed }
func (a *Animation) Colors() *palette.Crossfader  { return a.colors }
func (a *Animation) Tuning() Tuning               { return a.tun }
func (a *Animation) TurnFlip() float64            { return a.turnFlip }
func (a *Animation) ClearUntil() time.Duration    { return a.clearUntil }
func (a *Animation) SetTarget(p dynamo.Vec2)      { a.target = p }
func (a *Animation) SetHead(pos, vel dynamo.Vec2) { a.head, a.vel = pos, vel }
