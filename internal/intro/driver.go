package intro

import (
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/gleam/internal/dynamo"
)

const (
	minFrameDt = 0.001
	maxFrameDt = 0.05
)

// ClampDt converts a frame interval to seconds, bounded to [1ms, 50ms] so a
// long stall (hidden tab, debugger) cannot produce a huge step.
func ClampDt(elapsed time.Duration) float64 {
	dt := elapsed.Seconds()
	if dt < minFrameDt {
		return minFrameDt
	}
	if dt > maxFrameDt {
		return maxFrameDt
	}
	return dt
}

// Driver owns the render loop: clamp dt, update the animation, paint, and
// request the next tick. At most one tick request is outstanding.
type Driver struct {
	mu        sync.Mutex
	anim      *Animation
	painter   Painter
	sched     Scheduler
	observers []Observer
	logger    *slog.Logger

	last    time.Duration
	pending RequestID
	running bool
	stopped bool
	ticks   uint64

	// gen identifies the live request. Callbacks of older requests that
	// were already dequeued when they got cancelled must not run.
	gen uint64
}

// NewDriver wires the loop. A nil painter yields a driver on which every
// method is a no-op, matching a host without a usable drawing surface.
func NewDriver(anim *Animation, painter Painter, sched Scheduler) *Driver {
	d := &Driver{
		anim:    anim,
		painter: painter,
		sched:   sched,
		logger:  slog.New(slog.DiscardHandler),
	}
	if anim != nil {
		d.logger = anim.logger
	}
	return d
}

func (d *Driver) AddObserver(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

func (d *Driver) disabled() bool {
	return d.painter == nil || d.sched == nil || d.anim == nil
}

// Start sizes the surface, starts the first run, and requests the first tick.
func (d *Driver) Start(vp Viewport, now time.Duration) error {
	if d.disabled() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running || d.stopped {
		return nil
	}
	if err := d.applyResize(vp, now); err != nil {
		return err
	}
	d.running = true
	d.schedule()
	return nil
}

// Resize resizes the surface and restarts the run. The pending tick is
// replaced so a resize never leaves two requests outstanding.
func (d *Driver) Resize(vp Viewport, now time.Duration) error {
	if d.disabled() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}
	if err := d.applyResize(vp, now); err != nil {
		return err
	}
	d.logger.Info("viewport resized", "w", vp.W, "h", vp.H, "dpr", vp.DPR)

	if d.running {
		d.sched.Cancel(d.pending)
		d.schedule()
	}
	return nil
}

func (d *Driver) applyResize(vp Viewport, now time.Duration) error {
	if !vp.Valid() {
		return dynamo.ErrInvalidViewport
	}
	if err := d.painter.Resize(vp); err != nil {
		return err
	}
	if err := d.anim.Resize(vp); err != nil {
		return err
	}
	d.last = now
	return nil
}

// Tick runs one frame now, replacing any pending request.
func (d *Driver) Tick(now time.Duration) {
	if d.disabled() {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.pending != 0 {
		d.sched.Cancel(d.pending)
	}
	d.frame(now)
}

// tickGen is the scheduler callback for the request issued at gen.
func (d *Driver) tickGen(gen uint64, now time.Duration) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.frame(now)
}

// frame runs with d.mu held and releases it before notifying observers.
func (d *Driver) frame(now time.Duration) {
	d.pending = 0

	dt := ClampDt(now - d.last)
	d.last = now

	f := d.anim.Update(dt, now)
	d.painter.Paint(f)
	d.ticks++
	observers := d.observers

	d.schedule()
	d.mu.Unlock()

	for _, o := range observers {
		o.OnFrame(f)
	}
}

func (d *Driver) schedule() {
	d.gen++
	gen := d.gen
	d.pending = d.sched.Request(func(now time.Duration) { d.tickGen(gen, now) })
}

// Stop cancels the pending tick. A tick already running completes but
// schedules nothing further. Stop is idempotent.
func (d *Driver) Stop() {
	if d.disabled() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	d.running = false
	d.gen++
	if d.pending != 0 {
		d.sched.Cancel(d.pending)
		d.pending = 0
	}
}

func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

func (d *Driver) Animation() *Animation { return d.anim }
