package steer

import "github.com/san-kum/gleam/internal/dynamo"

const DefaultMaxTrail = 90

// Sample is one recorded head position and velocity.
type Sample struct {
	Pos dynamo.Vec2
	Vel dynamo.Vec2
}

// Trail is a bounded, oldest-first history of samples.
type Trail struct {
	samples []Sample
	max     int
}

func NewTrail(max int) *Trail {
	if max < 1 {
		max = DefaultMaxTrail
	}
	return &Trail{
		samples: make([]Sample, 0, max+1),
		max:     max,
	}
}

// Push appends s and evicts from the front until the cap holds.
func (t *Trail) Push(s Sample) {
	t.samples = append(t.samples, s)
	if over := len(t.samples) - t.max; over > 0 {
		n := copy(t.samples, t.samples[over:])
		t.samples = t.samples[:n]
	}
}

func (t *Trail) Len() int { return len(t.samples) }
func (t *Trail) Max() int { return t.max }
func (t *Trail) Reset()   { t.samples = t.samples[:0] }

// Samples returns a copy, oldest first.
func (t *Trail) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}
