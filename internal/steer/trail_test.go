package steer

import (
	"testing"

	"github.com/san-kum/gleam/internal/dynamo"
)

func TestTrail_Bounded(t *testing.T) {
	tr := NewTrail(DefaultMaxTrail)

	for i := 0; i < 250; i++ {
		tr.Push(Sample{Pos: dynamo.V(float64(i), 0)})
		if tr.Len() > DefaultMaxTrail {
			t.Fatalf("push %d: len %d exceeds cap %d", i, tr.Len(), DefaultMaxTrail)
		}
	}

	s := tr.Samples()
	if len(s) != DefaultMaxTrail {
		t.Fatalf("expected %d samples, got %d", DefaultMaxTrail, len(s))
	}
	if s[0].Pos.X != 160 || s[len(s)-1].Pos.X != 249 {
		t.Errorf("expected window [160, 249], got [%v, %v]", s[0].Pos.X, s[len(s)-1].Pos.X)
	}
	for i := 1; i < len(s); i++ {
		if s[i].Pos.X <= s[i-1].Pos.X {
			t.Fatalf("samples out of order at %d", i)
		}
	}
}

func TestTrail_SamplesIsCopy(t *testing.T) {
	tr := NewTrail(4)
	tr.Push(Sample{Pos: dynamo.V(1, 1)})

	s := tr.Samples()
	s[0].Pos.X = 99

	if tr.Samples()[0].Pos.X != 1 {
		t.Error("Samples did not return an independent copy")
	}
}

func TestTrail_Reset(t *testing.T) {
	tr := NewTrail(4)
	tr.Push(Sample{})
	tr.Push(Sample{})
	tr.Reset()

	if tr.Len() != 0 {
		t.Errorf("expected empty trail, got %d", tr.Len())
	}
	if tr.Max() != 4 {
		t.Errorf("Reset changed cap to %d", tr.Max())
	}
}
