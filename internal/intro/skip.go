package intro

import (
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/gleam/internal/dynamo"
)

const DefaultEnterDelay = time.Second

// NoEnterDelay as Props.EnterDelay shows the affordance at mount. The zero
// value selects DefaultEnterDelay instead.
const NoEnterDelay time.Duration = -1

// ExplicitEnterDelay maps a configured delay, where zero means "at mount",
// onto Props.EnterDelay.
func ExplicitEnterDelay(d time.Duration) time.Duration {
	if d == 0 {
		return NoEnterDelay
	}
	return d
}

// Props is the embedding contract of the intro.
type Props struct {
	// OnFinish is called once, only in response to the user dismissing the
	// intro. The host removes the intro afterwards.
	OnFinish func()
	// EnterDelay is the time from mount until the skip affordance is shown
	// and accepts input. Zero means DefaultEnterDelay, NoEnterDelay means
	// at mount.
	EnterDelay time.Duration
}

// SkipGate guards the "enter" affordance: hidden until EnterDelay has
// passed since mount, then a press or an Enter/Space key fires OnFinish.
type SkipGate struct {
	mu       sync.Mutex
	onFinish func()
	delay    time.Duration
	mounted  time.Duration
	finished bool
	timer    *time.Timer
}

func NewSkipGate(p Props, mountedAt time.Duration) (*SkipGate, error) {
	if p.OnFinish == nil {
		return nil, dynamo.ErrNoFinish
	}
	delay := p.EnterDelay
	switch {
	case delay == NoEnterDelay:
		delay = 0
	case delay < 0:
		return nil, fmt.Errorf("enter delay %v: %w", p.EnterDelay, dynamo.ErrParameterBounds)
	case delay == 0:
		delay = DefaultEnterDelay
	}
	return &SkipGate{
		onFinish: p.OnFinish,
		delay:    delay,
		mounted:  mountedAt,
	}, nil
}

func (g *SkipGate) Delay() time.Duration { return g.delay }

// Visible reports whether the affordance is shown at now.
func (g *SkipGate) Visible(now time.Duration) bool {
	return now-g.mounted >= g.delay
}

// Press is a click on the affordance.
func (g *SkipGate) Press(now time.Duration) bool {
	if !g.Visible(now) {
		return false
	}
	return g.finish()
}

// Key handles a key press; only Enter and Space dismiss.
func (g *SkipGate) Key(now time.Duration, key string) bool {
	switch key {
	case "enter", " ", "space":
	default:
		return false
	}
	return g.Press(now)
}

func (g *SkipGate) finish() bool {
	g.mu.Lock()
	if g.finished {
		g.mu.Unlock()
		return false
	}
	g.finished = true
	g.mu.Unlock()

	g.onFinish()
	return true
}

func (g *SkipGate) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finished
}

// Arm calls reveal once the delay has passed, measured from now. Hosts
// without their own timers use it to repaint when the affordance appears.
// Close cancels it.
func (g *SkipGate) Arm(now time.Duration, reveal func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}
	wait := g.delay - (now - g.mounted)
	if wait < 0 {
		wait = 0
	}
	g.timer = time.AfterFunc(wait, reveal)
}

// Close stops a pending Arm timer so it cannot fire after teardown.
func (g *SkipGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
