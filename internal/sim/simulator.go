package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/render"
)

// Runner drives an Animation one frame per FrameInterval and collects
// samples and metrics from every frame. The clock is synthetic unless
// Config.Realtime asks for a wall-clock ticker.
type Runner struct {
	painter   intro.Painter
	metrics   []Metric
	observers []intro.Observer
	logger    *slog.Logger
}

// New returns a runner painting on p. A nil painter paints nothing.
func New(p intro.Painter) *Runner {
	return &Runner{
		painter:   p,
		metrics:   make([]Metric, 0),
		observers: make([]intro.Observer, 0),
		logger:    slog.New(slog.DiscardHandler),
	}
}

func (r *Runner) AddMetric(m Metric)           { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o intro.Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(cfg.Duration / cfg.FrameInterval)
	result := &Result{
		Samples: make([]Sample, 0, frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	painter := r.painter
	if painter == nil {
		painter = render.NewRenderer(render.Discard, cfg.Style)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	anim := intro.NewAnimation(cfg.Tuning, rng, intro.WithLogger(r.logger))

	var (
		manual *intro.ManualScheduler
		ticker *intro.TickerScheduler
		sched  intro.Scheduler
		start  time.Duration
	)
	if cfg.Realtime {
		ticker = intro.NewTickerScheduler(ctx, cfg.FrameInterval)
		defer ticker.Close()
		sched, start = ticker, ticker.Now()
	} else {
		manual = intro.NewManualScheduler()
		sched = manual
	}
	drv := intro.NewDriver(anim, painter, sched)

	halt := make(chan struct{})
	var haltOnce sync.Once
	drv.AddObserver(intro.ObserverFunc(func(f intro.Frame) {
		if cfg.ValidateState && !(f.Head.IsValid() && f.Vel.IsValid()) {
			result.Errors = append(result.Errors, &dynamo.FrameError{
				Frame:   f.Seq,
				Time:    f.Now.Seconds(),
				Wrapped: dynamo.ErrInvalidState,
			})
			drv.Stop()
			haltOnce.Do(func() { close(halt) })
			return
		}

		for _, m := range r.metrics {
			m.Observe(f)
		}
		result.Samples = append(result.Samples, SampleOf(f))
		result.Last = f
	}))
	for _, o := range r.observers {
		drv.AddObserver(o)
	}

	if err := drv.Start(cfg.Viewport, start); err != nil {
		return nil, err
	}
	defer drv.Stop()

	if cfg.Realtime {
		err := r.waitRealtime(ctx, cfg.Duration, halt)
		// no callback runs past these two calls, so result is ours again
		drv.Stop()
		ticker.Close()
		if err != nil {
			return result, err
		}
	} else {
	loop:
		for i := 0; i < frames; i++ {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-halt:
				break loop
			default:
			}
			manual.Advance(cfg.FrameInterval)
		}
	}

	result.Frames = int(drv.Ticks())
	result.Runs = anim.Runs()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.logger.Info("trace finished", "frames", result.Frames, "runs", result.Runs, "errors", len(result.Errors))
	return result, nil
}

// waitRealtime blocks while the ticker drives frames on wall-clock time.
func (r *Runner) waitRealtime(ctx context.Context, d time.Duration, halt <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-halt:
	case <-timer.C:
	}
	return nil
}

func validateConfig(cfg Config) error {
	if !cfg.Viewport.Valid() {
		return fmt.Errorf("viewport %gx%g: %w", cfg.Viewport.W, cfg.Viewport.H, dynamo.ErrInvalidViewport)
	}
	if cfg.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v: %w", cfg.FrameInterval, dynamo.ErrParameterBounds)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v: %w", cfg.Duration, dynamo.ErrParameterBounds)
	}
	if cfg.Tuning.Speed <= 0 || cfg.Tuning.SteerPerSec <= 0 || cfg.Tuning.MaxTrail < 1 {
		return fmt.Errorf("tuning %+v: %w", cfg.Tuning, dynamo.ErrParameterBounds)
	}
	return nil
}
