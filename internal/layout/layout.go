// Package layout generates the wheel arrangement by constrained-random circle
// packing and derives the connector graph between adjacent wheels.
//
// Placement is rejection sampling: candidates are drawn uniformly inside the
// canvas (inset by their own radius) and accepted only when they keep the
// overlap bound against every placed wheel and sit close enough to at least
// one of them. Running out of attempts is not an error; the caller gets a
// smaller arrangement and a [Report] saying so.
package layout

import (
	"math/rand"

	"github.com/kyra-dean/rosette/internal/geom"
)

// WheelID identifies a wheel within one layout generation. IDs are dense and
// match placement order; they are not stable across regenerations.
type WheelID int

// Wheel is the immutable placement record for one circular motif.
type Wheel struct {
	ID         WheelID
	Center     geom.Vec2
	BaseRadius float64
	ColorGroup int
}

// Contains reports whether p lies inside the wheel at radius r.
func (w Wheel) Contains(p geom.Vec2, r float64) bool {
	return w.Center.Dist(p) <= r
}

// Connector links two geometrically adjacent wheels. Endpoints and color are
// frozen at layout time and never recomputed.
type Connector struct {
	A, B       WheelID
	From, To   geom.Vec2
	ColorGroup int
}

// Options tune the packing. All factors have sane defaults via
// [DefaultOptions]; zero values for the bounds mean "derive from width".
type Options struct {
	TargetCount int

	// Candidate radii are drawn uniformly from
	// [MinRadiusFrac*width, MaxRadiusFrac*width], intersected with the
	// absolute MinRadius/MaxRadius bounds when those are non-zero.
	MinRadiusFrac float64
	MaxRadiusFrac float64
	MinRadius     float64
	MaxRadius     float64

	// OverlapSlack is the fraction of the smaller radius by which two
	// wheels may intrude into each other. A candidate at distance
	// d < r1+r2 - slack*min(r1,r2) is rejected.
	OverlapSlack float64

	// ProximityFactor caps how far (in combined radii) a candidate may sit
	// from its nearest placed wheel. The first wheel is exempt.
	ProximityFactor float64

	// ConnectorFactor: wheel pairs closer than factor*(r1+r2) get a
	// connector.
	ConnectorFactor float64

	// ColorGroups is the number of palette groups wheels are assigned to.
	ColorGroups int

	// MaxAttempts bounds the total candidate draws. Zero means
	// 200 per requested wheel.
	MaxAttempts int
}

// DefaultOptions returns the stock packing parameters.
func DefaultOptions() Options {
	return Options{
		TargetCount:     25,
		MinRadiusFrac:   0.04,
		MaxRadiusFrac:   0.12,
		OverlapSlack:    0.4,
		ProximityFactor: 1.5,
		ConnectorFactor: 1.3,
		ColorGroups:     4,
	}
}

// Report describes how a generation went. Placed < Requested means attempt
// exhaustion, which callers should surface but not treat as failure.
type Report struct {
	Requested int
	Placed    int
	Attempts  int
}

// Exhausted reports whether placement stopped short of the target.
func (r Report) Exhausted() bool { return r.Placed < r.Requested }

// Generate packs up to opts.TargetCount wheels into a width x height canvas
// and derives the connector set. The rng drives every random choice, so a
// fixed seed reproduces the layout exactly.
func Generate(width, height float64, opts Options, rng *rand.Rand) ([]Wheel, []Connector, Report) {
	report := Report{Requested: opts.TargetCount}

	lo := opts.MinRadiusFrac * width
	hi := opts.MaxRadiusFrac * width
	if opts.MinRadius > 0 && opts.MinRadius > lo {
		lo = opts.MinRadius
	}
	if opts.MaxRadius > 0 && opts.MaxRadius < hi {
		hi = opts.MaxRadius
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = opts.TargetCount * 200
	}

	var wheels []Wheel
	if lo <= 0 || hi < lo {
		return wheels, nil, report
	}

	prevGroup := -1
	for len(wheels) < opts.TargetCount && report.Attempts < maxAttempts {
		report.Attempts++

		r := lo + rng.Float64()*(hi-lo)
		if 2*r >= width || 2*r >= height {
			continue
		}
		center := geom.V(
			r+rng.Float64()*(width-2*r),
			r+rng.Float64()*(height-2*r),
		)

		if !fits(center, r, wheels, opts) {
			continue
		}

		group := pickGroup(opts.ColorGroups, prevGroup, rng)
		wheels = append(wheels, Wheel{
			ID:         WheelID(len(wheels)),
			Center:     center,
			BaseRadius: r,
			ColorGroup: group,
		})
		prevGroup = group
	}

	report.Placed = len(wheels)
	return wheels, deriveConnectors(wheels, opts.ConnectorFactor), report
}

// fits applies the overlap and proximity rules against every placed wheel.
func fits(center geom.Vec2, r float64, placed []Wheel, opts Options) bool {
	if len(placed) == 0 {
		return true
	}
	nearAny := false
	for _, w := range placed {
		d := center.Dist(w.Center)
		rc := r + w.BaseRadius
		slack := r
		if w.BaseRadius < r {
			slack = w.BaseRadius
		}
		if d < rc-slack*opts.OverlapSlack {
			return false
		}
		if d <= rc*opts.ProximityFactor {
			nearAny = true
		}
	}
	return nearAny
}

// pickGroup draws a color group, avoiding the previous wheel's group whenever
// more than one group exists.
func pickGroup(groups, prev int, rng *rand.Rand) int {
	if groups <= 1 {
		return 0
	}
	if prev < 0 {
		return rng.Intn(groups)
	}
	g := rng.Intn(groups - 1)
	if g >= prev {
		g++
	}
	return g
}

// deriveConnectors creates one connector per unordered wheel pair closer than
// factor*(r1+r2). Quadratic over the final count, which stays in the tens.
func deriveConnectors(wheels []Wheel, factor float64) []Connector {
	var conns []Connector
	for i := 0; i < len(wheels); i++ {
		for j := i + 1; j < len(wheels); j++ {
			a, b := wheels[i], wheels[j]
			if a.Center.Dist(b.Center) < factor*(a.BaseRadius+b.BaseRadius) {
				conns = append(conns, Connector{
					A:          a.ID,
					B:          b.ID,
					From:       a.Center,
					To:         b.Center,
					ColorGroup: a.ColorGroup,
				})
			}
		}
	}
	return conns
}
