package metrics

import "github.com/san-kum/gleam/internal/intro"

// Runs counts distinct runs started while observing.
type Runs struct {
	name  string
	first int
	last  int
}

func NewRuns() *Runs {
	return &Runs{name: "runs"}
}

func (r *Runs) Name() string { return r.name }

func (r *Runs) Observe(f intro.Frame) {
	if r.first == 0 {
		r.first = f.Run
	}
	r.last = f.Run
}

func (r *Runs) Value() float64 {
	if r.first == 0 {
		return 0
	}
	return float64(r.last - r.first + 1)
}

func (r *Runs) Reset() {
	r.first = 0
	r.last = 0
}

// Exits counts completed exits, i.e. transitions into the clear phase.
type Exits struct {
	name  string
	prev  intro.Phase
	count int
	seen  bool
}

func NewExits() *Exits {
	return &Exits{name: "exits"}
}

func (e *Exits) Name() string { return e.name }

func (e *Exits) Observe(f intro.Frame) {
	if e.seen && e.prev != intro.Clear && f.Phase == intro.Clear {
		e.count++
	}
	e.prev = f.Phase
	e.seen = true
}

func (e *Exits) Value() float64 { return float64(e.count) }

func (e *Exits) Reset() {
	e.prev = intro.Carve
	e.count = 0
	e.seen = false
}

// Retargets counts waypoints abandoned by the timeout watchdog.
type Retargets struct {
	name  string
	base  int
	last  int
	begun bool
}

func NewRetargets() *Retargets {
	return &Retargets{name: "retargets"}
}

func (r *Retargets) Name() string { return r.name }

func (r *Retargets) Observe(f intro.Frame) {
	if !r.begun {
		r.base = f.Retargets
		r.begun = true
	}
	r.last = f.Retargets
}

func (r *Retargets) Value() float64 { return float64(r.last - r.base) }

func (r *Retargets) Reset() {
	r.base = 0
	r.last = 0
	r.begun = false
}
