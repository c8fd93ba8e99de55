package intro

import (
	"context"
	"sync"
	"time"
)

// RequestID identifies a pending tick request. Zero is never issued.
type RequestID uint64

// Scheduler delivers "next frame" callbacks, like requestAnimationFrame.
// A request fires at most once; Cancel of a fired or unknown id is a no-op.
type Scheduler interface {
	Request(fn func(now time.Duration)) RequestID
	Cancel(id RequestID)
}

type request struct {
	id RequestID
	fn func(now time.Duration)
}

type queue struct {
	mu      sync.Mutex
	nextID  RequestID
	pending []request
}

func (q *queue) Request(fn func(now time.Duration)) RequestID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending = append(q.pending, request{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *queue) Cancel(id RequestID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// fire runs the requests pending at call time; requests made from inside a
// callback wait for the next fire.
func (q *queue) fire(now time.Duration) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, r := range batch {
		r.fn(now)
	}
	return len(batch)
}

// ManualScheduler fires only when the caller advances its clock.
type ManualScheduler struct {
	queue
	now time.Duration
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Now() time.Duration { return s.now }

// Advance moves the clock forward by d and fires pending requests.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.now += d
	return s.fire(s.now)
}

// FireAt sets the clock to now and fires pending requests.
func (s *ManualScheduler) FireAt(now time.Duration) int {
	s.now = now
	return s.fire(now)
}

// TickerScheduler fires pending requests from a single goroutine on a fixed
// interval until its context is done or Close is called.
type TickerScheduler struct {
	queue
	start  time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTickerScheduler(ctx context.Context, interval time.Duration) *TickerScheduler {
	ctx, cancel := context.WithCancel(ctx)
	s := &TickerScheduler{
		start:  time.Now(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.loop(ctx, interval)
	return s
}

func (s *TickerScheduler) loop(ctx context.Context, interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.fire(t.Sub(s.start))
		}
	}
}

func (s *TickerScheduler) Now() time.Duration { return time.Since(s.start) }

// Close stops the loop and waits for an in-flight callback to return.
func (s *TickerScheduler) Close() {
	s.cancel()
	<-s.done
}

// Done is closed once the loop has exited.
func (s *TickerScheduler) Done() <-chan struct{} { return s.done }
