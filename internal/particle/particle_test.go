package particle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kyra-dean/rosette/internal/geom"
)

func newTestSystem() *System {
	return NewSystem(rand.New(rand.NewSource(1)))
}

func TestSpawnForWheel_Counts(t *testing.T) {
	s := newTestSystem()
	n := s.SpawnForWheel(3, geom.V(100, 100), 50)

	if n != SpokesPerWheel+DotsPerWheel {
		t.Fatalf("SpawnForWheel returned %d, want %d", n, SpokesPerWheel+DotsPerWheel)
	}
	if s.Len() != 64 {
		t.Fatalf("system holds %d particles, want 64", s.Len())
	}

	spokes, dots := 0, 0
	for _, p := range s.Particles() {
		switch p.Kind {
		case Spoke:
			spokes++
		case Dot:
			dots++
		}
		if p.Owner != 3 {
			t.Errorf("particle owner = %d, want 3", p.Owner)
		}
		if p.State != Flying {
			t.Error("freshly spawned particle is not Flying")
		}
		if p.Alpha != 255 {
			t.Errorf("spawn alpha = %v, want 255", p.Alpha)
		}
	}
	if spokes != SpokesPerWheel || dots != DotsPerWheel {
		t.Errorf("spawned %d spokes, %d dots; want %d, %d", spokes, dots, SpokesPerWheel, DotsPerWheel)
	}
}

func TestSpawnForWheel_TargetsOnOrnamentRings(t *testing.T) {
	s := newTestSystem()
	center := geom.V(200, 150)
	radius := 40.0
	s.SpawnForWheel(0, center, radius)

	for _, p := range s.Particles() {
		want := radius * spokeRadiusFrac
		if p.Kind == Dot {
			want = radius * dotRadiusFrac
		}
		got := p.Target.Dist(center)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%v target at distance %.4f from center, want %.4f", p.Kind, got, want)
		}
		if p.Pos != p.Target {
			t.Error("particle does not start on its target point")
		}
	}
}

func TestSpawnForWheel_AnglesEvenlySpaced(t *testing.T) {
	s := newTestSystem()
	center := geom.V(0, 0)
	s.SpawnForWheel(0, center, 10)

	var spokeAngles []float64
	for _, p := range s.Particles() {
		if p.Kind == Spoke {
			spokeAngles = append(spokeAngles, math.Atan2(p.Target.Y, p.Target.X))
		}
	}
	if len(spokeAngles) != SpokesPerWheel {
		t.Fatalf("got %d spoke angles", len(spokeAngles))
	}
	step := 2 * math.Pi / float64(SpokesPerWheel)
	for i := 1; i < len(spokeAngles); i++ {
		diff := math.Mod(spokeAngles[i]-spokeAngles[i-1]+2*math.Pi, 2*math.Pi)
		if math.Abs(diff-step) > 1e-9 {
			t.Errorf("angle step %d = %.6f, want %.6f", i, diff, step)
		}
	}
}

func TestStep_FlyingDynamics(t *testing.T) {
	s := newTestSystem()
	s.SpawnForWheel(0, geom.V(0, 0), 20)

	before := make([]Particle, s.Len())
	copy(before, s.Particles())

	s.Step()

	after := s.Particles()
	if len(after) != len(before) {
		t.Fatalf("live count changed from %d to %d on first tick", len(before), len(after))
	}
	for i, p := range after {
		b := before[i]
		wantPos := b.Pos.Add(b.Vel)
		if p.Pos != wantPos {
			t.Errorf("particle %d pos = %v, want %v", i, p.Pos, wantPos)
		}
		if p.Vel != b.Vel.Add(s.Wind) {
			t.Errorf("particle %d velocity missing wind drift", i)
		}
		if p.Alpha != b.Alpha-s.AlphaStep {
			t.Errorf("particle %d alpha = %v, want %v", i, p.Alpha, b.Alpha-s.AlphaStep)
		}
		if math.Abs(p.Size-b.Size*s.SizeDecay) > 1e-12 {
			t.Errorf("particle %d size = %v, want %v", i, p.Size, b.Size*s.SizeDecay)
		}
		if b.Kind == Spoke && p.Rot != b.Rot+b.RotSpeed {
			t.Errorf("spoke %d rotation not advanced", i)
		}
	}
}

func TestStep_FlyingRemovedAtZeroAlpha(t *testing.T) {
	s := newTestSystem()
	s.SpawnForWheel(0, geom.V(0, 0), 20)

	// Drain alpha: 255 / 2.5 = 102 ticks to reach zero.
	ticks := int(math.Ceil(255/s.AlphaStep)) + 1
	for i := 0; i < ticks; i++ {
		s.Step()
	}
	if s.Len() != 0 {
		t.Errorf("%d Flying particles survive exhausted alpha", s.Len())
	}
}

func TestBeginReturn_FlipsOnlyOwnersFlyingParticles(t *testing.T) {
	s := newTestSystem()
	s.SpawnForWheel(1, geom.V(0, 0), 20)
	s.SpawnForWheel(2, geom.V(100, 0), 20)

	flipped := s.BeginReturn(1)
	if flipped != 64 {
		t.Fatalf("BeginReturn flipped %d, want 64", flipped)
	}
	for _, p := range s.Particles() {
		want := Flying
		if p.Owner == 1 {
			want = Returning
		}
		if p.State != want {
			t.Errorf("owner %d particle state = %v, want %v", p.Owner, p.State, want)
		}
	}

	// Second call is a no-op: Returning is absorbing.
	if again := s.BeginReturn(1); again != 0 {
		t.Errorf("second BeginReturn flipped %d, want 0", again)
	}
}

func TestStep_ReturningConvergesAndIsRemoved(t *testing.T) {
	s := newTestSystem()
	s.SpawnForWheel(0, geom.V(0, 0), 20)

	// Let them fly away first, then call them home.
	for i := 0; i < 30; i++ {
		s.Step()
	}
	if s.Len() == 0 {
		t.Fatal("particles died before the test could recall them")
	}
	s.BeginReturn(0)

	for i := 0; i < 500 && s.Len() > 0; i++ {
		for _, p := range s.Particles() {
			if p.State != Returning {
				t.Fatal("non-Returning particle after BeginReturn")
			}
		}
		s.Step()
	}
	if s.Len() != 0 {
		t.Errorf("%d Returning particles never reached their remove-condition", s.Len())
	}
}

func TestStep_ReturningPersistsUntilBothConditions(t *testing.T) {
	s := newTestSystem()
	s.particles = append(s.particles, Particle{
		Owner:  0,
		Kind:   Dot,
		Pos:    geom.V(100, 0), // far from target
		Alpha:  0.5,            // already invisible
		Target: geom.V(0, 0),
		State:  Returning,
	})

	s.Step()
	if s.Len() != 1 {
		t.Fatal("Returning particle removed while still far from target")
	}

	// Parked on the target but still visible: must persist too.
	s.Reset()
	s.particles = append(s.particles, Particle{
		Owner:  0,
		Kind:   Dot,
		Pos:    geom.V(0, 0),
		Alpha:  200,
		Target: geom.V(0, 0),
		State:  Returning,
	})
	s.Step()
	if s.Len() != 1 {
		t.Fatal("Returning particle removed while still visible")
	}
}

func TestStep_PreservesSurvivorOrder(t *testing.T) {
	s := newTestSystem()
	s.SpawnForWheel(0, geom.V(0, 0), 20)

	// Kill every third particle this tick by zeroing its alpha.
	for i := range s.particles {
		if i%3 == 0 {
			s.particles[i].Alpha = s.AlphaStep // hits zero after one step
		}
	}
	var wantTargets []geom.Vec2
	for i, p := range s.particles {
		if i%3 != 0 {
			wantTargets = append(wantTargets, p.Target)
		}
	}

	s.Step()

	got := s.Particles()
	if len(got) != len(wantTargets) {
		t.Fatalf("survivors = %d, want %d", len(got), len(wantTargets))
	}
	for i, p := range got {
		if p.Target != wantTargets[i] {
			t.Errorf("survivor %d out of order", i)
		}
	}
}
