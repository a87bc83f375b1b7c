// Package scene owns the mutable composition state: wheels, connectors,
// particles, and the dispersal history. All mutation goes through four entry
// points (Tick, Trigger, Restore, Resize) that run on the frame loop's
// goroutine, so a dispersal is never observable mid-frame.
package scene

import (
	"math/rand"

	"github.com/kyra-dean/rosette/internal/audio"
	"github.com/kyra-dean/rosette/internal/geom"
	"github.com/kyra-dean/rosette/internal/layout"
	"github.com/kyra-dean/rosette/internal/particle"
)

// Wheel is a placed wheel plus its per-frame state. BaseRadius and Center
// come from the layout and never change within a generation.
type Wheel struct {
	layout.Wheel
	CurrentRadius float64
	Dispersed     bool
	FadeAlpha     float64 // 0..1, visibility while fading back in after a restore
}

// fadeStep is the per-tick fade-in increment after a restore.
const fadeStep = 0.025

// Scene is the owned aggregate of one layout generation.
type Scene struct {
	width, height float64
	opts          layout.Options
	rng           *rand.Rand

	wheels     []Wheel
	connectors []layout.Connector
	particles  *particle.System
	history    [][]layout.WheelID
	report     layout.Report
}

// New generates the initial layout for a width x height canvas. The seed
// fixes both placement and particle jitter.
func New(width, height float64, opts layout.Options, seed int64) *Scene {
	s := &Scene{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
	s.particles = particle.NewSystem(s.rng)
	s.regenerate(width, height)
	return s
}

func (s *Scene) regenerate(width, height float64) {
	s.width, s.height = width, height

	placed, conns, report := layout.Generate(width, height, s.opts, s.rng)
	s.wheels = make([]Wheel, len(placed))
	for i, w := range placed {
		s.wheels[i] = Wheel{Wheel: w, CurrentRadius: w.BaseRadius, FadeAlpha: 1}
	}
	s.connectors = conns
	s.report = report
	s.particles.Reset()
	s.history = nil
}

// Tick advances the whole scene by one frame: audio-reactive radii, particle
// motion, and wheel fade. spectrum may be empty, which freezes radii at base.
func (s *Scene) Tick(spectrum audio.Spectrum) {
	for i := range s.wheels {
		w := &s.wheels[i]

		scale := 1.0
		if len(spectrum) > 0 {
			sample := spectrum[audio.BinFor(i, len(s.wheels), len(spectrum))]
			scale = audio.Scale(sample)
		}
		w.CurrentRadius = w.BaseRadius * scale

		if w.Dispersed {
			w.FadeAlpha = 0
		} else {
			w.FadeAlpha = geom.Clamp(w.FadeAlpha+fadeStep, 0, 1)
		}
	}
	s.particles.Step()
}

// Trigger disperses the topmost non-dispersed wheel containing p together
// with every visible wheel of its color group. It reports whether anything
// dispersed; a miss is a no-op.
func (s *Scene) Trigger(p geom.Vec2) bool {
	// Wheels render in placement order, so the last placed is topmost.
	hit := -1
	for i := len(s.wheels) - 1; i >= 0; i-- {
		w := &s.wheels[i]
		if !w.Dispersed && w.Contains(p, w.CurrentRadius) {
			hit = i
			break
		}
	}
	if hit < 0 {
		return false
	}

	group := s.wheels[hit].ColorGroup
	var entry []layout.WheelID
	for i := range s.wheels {
		w := &s.wheels[i]
		if w.Dispersed || w.ColorGroup != group {
			continue
		}
		entry = append(entry, w.ID)
		w.Dispersed = true
		w.FadeAlpha = 0
		s.particles.SpawnForWheel(w.ID, w.Center, w.BaseRadius)
	}
	s.history = append(s.history, entry)
	return true
}

// Restore undoes the most recent dispersal: the affected wheels fade back in
// from transparent and their surviving particles fly home. Empty history is
// a no-op.
func (s *Scene) Restore() bool {
	if len(s.history) == 0 {
		return false
	}
	entry := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	for _, id := range entry {
		w := s.wheel(id)
		if w == nil {
			continue
		}
		w.Dispersed = false
		w.FadeAlpha = 0
		s.particles.BeginReturn(id)
	}
	return true
}

// Resize is a hard reset: a fresh layout for the new canvas, with in-flight
// particles and the undo history discarded.
func (s *Scene) Resize(width, height float64) {
	s.regenerate(width, height)
}

func (s *Scene) wheel(id layout.WheelID) *Wheel {
	// IDs are placement indices within a generation.
	if int(id) < 0 || int(id) >= len(s.wheels) {
		return nil
	}
	return &s.wheels[id]
}

// Wheels exposes the wheel slice for rendering. Read-only by convention.
func (s *Scene) Wheels() []Wheel { return s.wheels }

// Connectors exposes the connector set of the current generation.
func (s *Scene) Connectors() []layout.Connector { return s.connectors }

// Particles exposes the live particles for rendering.
func (s *Scene) Particles() []particle.Particle { return s.particles.Particles() }

// HistoryDepth is the number of dispersals that can still be restored.
func (s *Scene) HistoryDepth() int { return len(s.history) }

// Report describes the most recent layout generation.
func (s *Scene) Report() layout.Report { return s.report }

// Size returns the current canvas dimensions.
func (s *Scene) Size() (float64, float64) { return s.width, s.height }
