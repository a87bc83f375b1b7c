// Package particle owns the dispersed-ornament particles and their two-state
// lifecycle. A particle is born Flying when its wheel disperses and may be
// flipped once to Returning, which pulls it back to the exact point on the
// wheel it was spawned from.
package particle

import (
	"math"
	"math/rand"

	"github.com/kyra-dean/rosette/internal/geom"
	"github.com/kyra-dean/rosette/internal/layout"
)

// Kind distinguishes the two ornament types a wheel sheds.
type Kind int

const (
	Spoke Kind = iota
	Dot
)

// State is the particle lifecycle state. Returning is absorbing: there is no
// transition back to Flying.
type State int

const (
	Flying State = iota
	Returning
)

// Per-wheel spawn counts. Every dispersal sheds exactly these many ornaments.
const (
	SpokesPerWheel = 24
	DotsPerWheel   = 40
)

// Ornament radii as fractions of the wheel radius. Spokes sit on the inner
// ring, dots on the outer one.
const (
	spokeRadiusFrac = 0.62
	dotRadiusFrac   = 0.88
)

// Particle is one dispersed ornament element. Target is fixed at spawn time
// and never changes; together with Owner it reassociates the particle with
// its wheel on restore.
type Particle struct {
	Owner    layout.WheelID
	Kind     Kind
	Pos      geom.Vec2
	Vel      geom.Vec2
	Rot      float64
	RotSpeed float64
	Alpha    float64 // 0..255
	Size     float64
	Target   geom.Vec2
	State    State

	baseSize float64 // size at spawn, restored while Returning
}

// System advances every particle once per tick and removes the ones whose
// remove-condition holds, preserving the order of survivors.
type System struct {
	particles []Particle
	rng       *rand.Rand

	// Per-tick dynamics. Exposed so presets can soften the motion.
	Wind      geom.Vec2 // constant velocity drift while Flying
	AlphaStep float64   // alpha lost per tick while Flying
	SizeDecay float64   // multiplicative size decay while Flying
	Smoothing float64   // exponential interpolation factor while Returning
	Epsilon   float64   // distance-to-target below which a Returning particle may be removed
}

// NewSystem returns a particle system with the stock dynamics. The rng
// drives spawn jitter only.
func NewSystem(rng *rand.Rand) *System {
	return &System{
		rng:       rng,
		Wind:      geom.V(0.015, 0.05),
		AlphaStep: 2.5,
		SizeDecay: 0.988,
		Smoothing: 0.12,
		Epsilon:   0.75,
	}
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.particles) }

// Particles exposes the live particles for rendering. Callers must not
// mutate or retain the slice across ticks.
func (s *System) Particles() []Particle { return s.particles }

// Reset drops every particle. Used on layout regeneration.
func (s *System) Reset() { s.particles = s.particles[:0] }

// SpawnForWheel sheds one wheel into SpokesPerWheel spoke particles and
// DotsPerWheel dot particles, evenly distributed over the full circle. Each
// particle's target is the exact circumference point it detached from, at
// the ornament-specific radius. Returns the number spawned.
func (s *System) SpawnForWheel(owner layout.WheelID, center geom.Vec2, radius float64) int {
	s.spawnRing(owner, Spoke, center, radius*spokeRadiusFrac, SpokesPerWheel)
	s.spawnRing(owner, Dot, center, radius*dotRadiusFrac, DotsPerWheel)
	return SpokesPerWheel + DotsPerWheel
}

func (s *System) spawnRing(owner layout.WheelID, kind Kind, center geom.Vec2, r float64, count int) {
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		target := geom.Polar(center, angle, r)

		speed := 1.2 + s.rng.Float64()*2.4
		// Outward, with a little tangential shear so rings break apart.
		vel := geom.V(math.Cos(angle), math.Sin(angle)).Scale(speed)
		tangent := geom.V(-math.Sin(angle), math.Cos(angle)).Scale((s.rng.Float64() - 0.5) * 1.2)
		vel = vel.Add(tangent)

		p := Particle{
			Owner:  owner,
			Kind:   kind,
			Pos:    target,
			Vel:    vel,
			Alpha:  255,
			Target: target,
			State:  Flying,
		}
		switch kind {
		case Spoke:
			p.Rot = angle
			p.RotSpeed = (s.rng.Float64() - 0.5) * 0.25
			p.Size = r * 0.35
		case Dot:
			p.Size = 2 + s.rng.Float64()*2.5
		}
		p.baseSize = p.Size
		s.particles = append(s.particles, p)
	}
}

// BeginReturn flips every Flying particle owned by the given wheel to
// Returning. Particles already Returning are left alone. Returns the number
// flipped.
func (s *System) BeginReturn(owner layout.WheelID) int {
	flipped := 0
	for i := range s.particles {
		p := &s.particles[i]
		if p.Owner == owner && p.State == Flying {
			p.State = Returning
			flipped++
		}
	}
	return flipped
}

// Step advances every live particle exactly once and compacts out the ones
// whose remove-condition holds. Compaction is in place and keeps the
// survivors in their original order.
func (s *System) Step() {
	live := s.particles[:0]
	for i := range s.particles {
		p := s.particles[i]
		if s.advance(&p) {
			live = append(live, p)
		}
	}
	s.particles = live
}

// advance mutates p by one tick and reports whether it survives.
func (s *System) advance(p *Particle) bool {
	switch p.State {
	case Flying:
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel = p.Vel.Add(s.Wind)
		if p.Kind == Spoke {
			p.Rot += p.RotSpeed
		}
		p.Alpha -= s.AlphaStep
		p.Size *= s.SizeDecay
		return p.Alpha > 0

	case Returning:
		k := s.Smoothing
		p.Pos = p.Pos.Lerp(p.Target, k)
		p.Alpha += (0 - p.Alpha) * k
		p.Size += (p.baseSize - p.Size) * k
		p.RotSpeed += (0 - p.RotSpeed) * k
		if p.Kind == Spoke {
			p.Rot += p.RotSpeed
		}
		// Exponential decay never reaches zero exactly; below one alpha
		// step the particle is invisible.
		return p.Alpha > 1 || p.Pos.Dist(p.Target) >= s.Epsilon
	}
	return false
}
