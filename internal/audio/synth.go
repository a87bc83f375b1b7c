package audio

import (
	"math"
	"math/rand"

	"github.com/kyra-dean/rosette/internal/geom"
)

// Synthetic is a seeded oscillator bank standing in for real audio, so the
// composition runs (and tests) without a device or file. Each bin pulses at
// its own rate with a bass-heavy envelope roughly shaped like music.
type Synthetic struct {
	t      float64
	phases []float64
	rates  []float64
	spec   Spectrum
}

func NewSynthetic(seed int64) *Synthetic {
	rng := rand.New(rand.NewSource(seed))
	s := &Synthetic{
		phases: make([]float64, Bins),
		rates:  make([]float64, Bins),
		spec:   make(Spectrum, Bins),
	}
	for i := range s.phases {
		s.phases[i] = rng.Float64() * 2 * math.Pi
		s.rates[i] = 0.5 + rng.Float64()*2.5
	}
	s.Step(0)
	return s
}

// Step advances the oscillators by dt seconds and recomputes the spectrum.
func (s *Synthetic) Step(dt float64) {
	s.t += dt
	for i := range s.spec {
		// Lower bins carry more energy, like most program material.
		envelope := 1.0 - 0.8*float64(i)/float64(Bins)
		v := math.Abs(math.Sin(s.t*s.rates[i] + s.phases[i]))
		// A slow shared swell keeps the whole field breathing together.
		swell := 0.6 + 0.4*math.Sin(s.t*0.4)
		s.spec[i] = byte(geom.Clamp(v*envelope*swell*255, 0, 255))
	}
}

func (s *Synthetic) Spectrum() Spectrum { return s.spec }

func (s *Synthetic) Close() error { return nil }
