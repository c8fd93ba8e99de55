package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrum(t *testing.T) {
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("single sample should give no spectrum")
	}

	flat := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5})
	if len(flat) != 3 {
		t.Fatalf("len = %d, want 3", len(flat))
	}
	for i, v := range flat {
		if v > 1e-9 {
			t.Errorf("bin %d = %v, want 0 for a constant signal", i, v)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		rate float64
		n    int
	}{
		{"weave 1hz", 1, 64, 512},
		{"weave 2hz", 2, 60, 600},
		{"slow", 0.5, 32, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, tt.n)
			for i := range data {
				data[i] = 300 + 80*math.Sin(2*math.Pi*tt.hz*float64(i)/tt.rate)
			}
			got := DominantFrequency(data, tt.rate)
			// one bin of the transform
			tol := tt.rate / float64(tt.n)
			if math.Abs(got-tt.hz) > tol {
				t.Errorf("DominantFrequency = %v, want %v ± %v", got, tt.hz, tol)
			}
		})
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if DominantFrequency(nil, 60) != 0 {
		t.Error("empty data should give 0")
	}
	if DominantFrequency([]float64{1, 2, 3}, 0) != 0 {
		t.Error("zero rate should give 0")
	}
}

func TestWeaveFrequencyUsesLongestSegment(t *testing.T) {
	const rate = 60.0
	wave := func(n int, hz, offset float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = offset + 80*math.Sin(2*math.Pi*hz*float64(i)/rate)
		}
		return out
	}

	segments := [][]float64{
		wave(120, 5, 100),
		wave(360, 1, 400),
		wave(60, 3, 600),
	}
	if got := WeaveFrequency(segments, rate); math.Abs(got-1) > rate/360 {
		t.Errorf("WeaveFrequency = %v, want 1", got)
	}

	if WeaveFrequency(nil, rate) != 0 {
		t.Error("no segments should give 0")
	}
}
