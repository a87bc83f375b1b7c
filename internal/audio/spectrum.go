// Package audio produces the amplitude spectrum that drives the composition
// and maps spectrum samples to per-wheel size multipliers.
//
// Three spectrum sources exist: file playback (beep), microphone capture
// (portaudio), and a seeded synthetic oscillator bank for running without any
// audio device. All of them hand raw samples to the same FFT analyzer, which
// emits a fixed-length byte spectrum once per tick.
package audio

// Bins is the fixed spectrum length every source produces.
const Bins = 64

// Spectrum is one tick's amplitude samples, low frequencies first, each in
// [0, 255]. Consumers treat it as read-only.
type Spectrum []byte

// Scale bounds of the audio-reactive size multiplier.
const (
	MinScale = 0.8
	MaxScale = 1.2
)

// Scale maps an amplitude sample linearly onto [MinScale, MaxScale].
func Scale(sample byte) float64 {
	return MinScale + float64(sample)/255*(MaxScale-MinScale)
}

// BinFor maps a wheel's placement index onto the available spectrum bins so
// that the wheels cover the spectrum evenly regardless of either count.
func BinFor(index, count, bins int) int {
	if count <= 0 || bins <= 0 {
		return 0
	}
	bin := index * bins / count
	if bin >= bins {
		bin = bins - 1
	}
	if bin < 0 {
		bin = 0
	}
	return bin
}

// Source is a per-tick spectrum provider.
type Source interface {
	// Spectrum returns the current spectrum. The returned slice is only
	// valid until the next call.
	Spectrum() Spectrum
	Close() error
}
