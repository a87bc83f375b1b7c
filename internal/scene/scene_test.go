package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kyra-dean/rosette/internal/audio"
	"github.com/kyra-dean/rosette/internal/geom"
	"github.com/kyra-dean/rosette/internal/layout"
	"github.com/kyra-dean/rosette/internal/particle"
	"github.com/kyra-dean/rosette/internal/scene"
)

const perWheel = particle.SpokesPerWheel + particle.DotsPerWheel

func newScene() *scene.Scene {
	opts := layout.DefaultOptions()
	opts.TargetCount = 25
	opts.MinRadius = 32
	opts.MaxRadius = 96
	return scene.New(800, 600, opts, 42)
}

// topmostVisible returns the last placed wheel that is not dispersed, which
// is the one a click on its own center must resolve to.
func topmostVisible(s *scene.Scene) *scene.Wheel {
	wheels := s.Wheels()
	for i := len(wheels) - 1; i >= 0; i-- {
		if !wheels[i].Dispersed {
			return &wheels[i]
		}
	}
	return nil
}

func visibleInGroup(s *scene.Scene, group int) int {
	n := 0
	for _, w := range s.Wheels() {
		if !w.Dispersed && w.ColorGroup == group {
			n++
		}
	}
	return n
}

func flatSpectrum(v byte) audio.Spectrum {
	spec := make(audio.Spectrum, audio.Bins)
	for i := range spec {
		spec[i] = v
	}
	return spec
}

var _ = Describe("Scene", func() {
	var s *scene.Scene

	BeforeEach(func() {
		s = newScene()
		Expect(len(s.Wheels())).To(BeNumerically(">=", 2))
	})

	Describe("Trigger", func() {
		It("disperses the whole color group of the topmost hit wheel", func() {
			target := topmostVisible(s)
			k := visibleInGroup(s, target.ColorGroup)
			Expect(k).To(BeNumerically(">=", 1))

			Expect(s.Trigger(target.Center)).To(BeTrue())

			dispersed := 0
			for _, w := range s.Wheels() {
				if w.Dispersed {
					Expect(w.ColorGroup).To(Equal(target.ColorGroup))
					Expect(w.FadeAlpha).To(BeZero())
					dispersed++
				}
			}
			Expect(dispersed).To(Equal(k))
			Expect(s.HistoryDepth()).To(Equal(1))
			Expect(s.Particles()).To(HaveLen(k * perWheel))
		})

		It("is a no-op for a point outside every wheel", func() {
			Expect(s.Trigger(geom.V(-100, -100))).To(BeFalse())
			Expect(s.HistoryDepth()).To(BeZero())
			Expect(s.Particles()).To(BeEmpty())
		})

		It("never re-disperses an already dispersed wheel", func() {
			for {
				w := topmostVisible(s)
				if w == nil {
					break
				}
				Expect(s.Trigger(w.Center)).To(BeTrue())
			}
			// Everything is dispersed now; any further click misses.
			for _, w := range s.Wheels() {
				Expect(s.Trigger(w.Center)).To(BeFalse())
			}
			Expect(s.Particles()).To(HaveLen(len(s.Wheels()) * perWheel))
		})
	})

	Describe("Restore", func() {
		It("undoes dispersals in strict LIFO order", func() {
			a := topmostVisible(s)
			groupA := a.ColorGroup
			Expect(s.Trigger(a.Center)).To(BeTrue())

			b := topmostVisible(s)
			Expect(b).NotTo(BeNil())
			groupB := b.ColorGroup
			Expect(groupB).NotTo(Equal(groupA))
			Expect(s.Trigger(b.Center)).To(BeTrue())
			Expect(s.HistoryDepth()).To(Equal(2))

			Expect(s.Restore()).To(BeTrue())
			for _, w := range s.Wheels() {
				switch w.ColorGroup {
				case groupB:
					Expect(w.Dispersed).To(BeFalse())
					Expect(w.FadeAlpha).To(BeZero())
				case groupA:
					Expect(w.Dispersed).To(BeTrue())
				}
			}

			Expect(s.Restore()).To(BeTrue())
			for _, w := range s.Wheels() {
				Expect(w.Dispersed).To(BeFalse())
			}
			Expect(s.HistoryDepth()).To(BeZero())
		})

		It("flips the restored wheels' particles to Returning", func() {
			w := topmostVisible(s)
			Expect(s.Trigger(w.Center)).To(BeTrue())
			Expect(s.Restore()).To(BeTrue())

			for _, p := range s.Particles() {
				Expect(p.State).To(Equal(particle.Returning))
			}
		})

		It("is an idempotent no-op on empty history", func() {
			before := append([]scene.Wheel(nil), s.Wheels()...)
			for i := 0; i < 3; i++ {
				Expect(s.Restore()).To(BeFalse())
			}
			Expect(s.Wheels()).To(Equal(before))
			Expect(s.HistoryDepth()).To(BeZero())
		})
	})

	Describe("Tick", func() {
		It("scales each wheel's radius from its spectrum sample", func() {
			s.Tick(flatSpectrum(255))
			for _, w := range s.Wheels() {
				Expect(w.CurrentRadius).To(BeNumerically("~", w.BaseRadius*audio.MaxScale, 1e-9))
			}
			s.Tick(flatSpectrum(0))
			for _, w := range s.Wheels() {
				Expect(w.CurrentRadius).To(BeNumerically("~", w.BaseRadius*audio.MinScale, 1e-9))
			}
		})

		It("freezes radii at base when the spectrum is empty", func() {
			s.Tick(nil)
			for _, w := range s.Wheels() {
				Expect(w.CurrentRadius).To(Equal(w.BaseRadius))
			}
		})

		It("keeps dispersed wheels fully faded while others fade in", func() {
			w := topmostVisible(s)
			Expect(s.Trigger(w.Center)).To(BeTrue())
			Expect(s.Restore()).To(BeTrue())

			group := w.ColorGroup
			for i := 0; i < 100; i++ {
				s.Tick(nil)
			}
			for _, w := range s.Wheels() {
				if w.ColorGroup == group {
					Expect(w.FadeAlpha).To(BeNumerically("~", 1.0, 1e-9))
				}
			}

			Expect(s.Trigger(topmostVisible(s).Center)).To(BeTrue())
			s.Tick(nil)
			for _, w := range s.Wheels() {
				if w.Dispersed {
					Expect(w.FadeAlpha).To(BeZero())
				}
			}
		})

		It("eventually removes flying particles", func() {
			w := topmostVisible(s)
			Expect(s.Trigger(w.Center)).To(BeTrue())
			Expect(s.Particles()).NotTo(BeEmpty())

			for i := 0; i < 200; i++ {
				s.Tick(nil)
			}
			Expect(s.Particles()).To(BeEmpty())
		})
	})

	Describe("Resize", func() {
		It("replaces the layout and discards particles and history", func() {
			w := topmostVisible(s)
			Expect(s.Trigger(w.Center)).To(BeTrue())
			Expect(s.Particles()).NotTo(BeEmpty())
			Expect(s.HistoryDepth()).To(Equal(1))

			s.Resize(1024, 768)

			width, height := s.Size()
			Expect(width).To(Equal(1024.0))
			Expect(height).To(Equal(768.0))
			Expect(s.Particles()).To(BeEmpty())
			Expect(s.HistoryDepth()).To(BeZero())
			for _, w := range s.Wheels() {
				Expect(w.Dispersed).To(BeFalse())
				Expect(w.BaseRadius).To(BeNumerically(">", 0))
			}
		})
	})
})
