// Package analysis looks at recorded traces in the frequency domain.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the spectrum of
// data, mean removed and Hann windowed.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the strongest non-DC frequency in Hz of data sampled
// at sampleRate. It is how fast the head weaves between waypoints when fed
// the head's y coordinate.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || sampleRate <= 0 {
		return 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) * sampleRate / float64(len(data))
}

// WeaveFrequency is the dominant frequency of the longest segment. Segments
// are analysed alone because the jump between two of them would add
// broadband energy to the spectrum.
func WeaveFrequency(segments [][]float64, sampleRate float64) float64 {
	var longest []float64
	for _, seg := range segments {
		if len(seg) > len(longest) {
			longest = seg
		}
	}
	return DominantFrequency(longest, sampleRate)
}
