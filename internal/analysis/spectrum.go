package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns FFT magnitudes from DC up to and including Nyquist.
func Spectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	coeffs := fft.FFTReal(series)
	ps := make([]float64, len(coeffs)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// Dominant finds the strongest bin above DC and converts it to Hz for a
// series sampled at fps.
func Dominant(series []float64, fps float64) (freq, power float64) {
	ps := Spectrum(series)
	if len(ps) < 2 {
		return 0, 0
	}
	idx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[idx] {
			idx = i
		}
	}
	return float64(idx) * fps / float64(len(series)), ps[idx]
}

// HighBandRatio is the share of spectral magnitude in the upper half of
// the spectrum.
func HighBandRatio(series []float64) float64 {
	ps := Spectrum(series)
	if len(ps) < 2 {
		return 0
	}
	var low, high float64
	for i := 1; i < len(ps); i++ {
		if i < len(ps)/2 {
			low += ps[i]
		} else {
			high += ps[i]
		}
	}
	if low+high == 0 {
		return 0
	}
	return high / (low + high)
}
