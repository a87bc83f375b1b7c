package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	fftSize         = 1024
	smoothingFactor = 0.6
	agcDecay        = 0.999
	agcFloor        = 0.05
	maxGain         = 50.0
)

// analyzer turns a window of time-domain samples into the fixed-length byte
// spectrum. It keeps per-bin smoothing state and an automatic gain so quiet
// and loud material both span the byte range.
type analyzer struct {
	window   []float64 // Hann coefficients, precomputed
	bins     []float64 // smoothed magnitudes, 0..1
	maxLevel float64
}

func newAnalyzer() *analyzer {
	window := make([]float64, fftSize)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}
	return &analyzer{
		window:   window,
		bins:     make([]float64, Bins),
		maxLevel: agcFloor,
	}
}

// analyze consumes up to fftSize samples (zero-padded if fewer) and returns
// the current spectrum.
func (a *analyzer) analyze(samples []float64) Spectrum {
	buf := make([]float64, fftSize)
	n := copy(buf, samples)
	for i := 0; i < n; i++ {
		buf[i] *= a.window[i]
	}

	spectrum := fft.FFTReal(buf)

	// Group the usable half of the spectrum into output bins.
	half := fftSize / 2
	perBin := half / Bins
	peak := 0.0
	raw := make([]float64, Bins)
	for b := 0; b < Bins; b++ {
		sum := 0.0
		for k := b * perBin; k < (b+1)*perBin; k++ {
			sum += cmplx.Abs(spectrum[k])
		}
		raw[b] = sum / float64(perBin)
		if raw[b] > peak {
			peak = raw[b]
		}
	}

	// AGC: track the running peak, decay it slowly so the display recovers
	// after loud passages.
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= agcDecay
		if a.maxLevel < agcFloor {
			a.maxLevel = agcFloor
		}
	}
	gain := 1.0 / a.maxLevel
	if gain > maxGain {
		gain = maxGain
	}

	out := make(Spectrum, Bins)
	for b := 0; b < Bins; b++ {
		// Perceptual compression, then smooth against the previous tick.
		mag := math.Pow(math.Min(raw[b]*gain, 1.0), 0.5)
		a.bins[b] = smoothingFactor*a.bins[b] + (1-smoothingFactor)*mag
		out[b] = byte(math.Round(a.bins[b] * 255))
	}
	return out
}
