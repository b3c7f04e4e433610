package world_test

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravwell/internal/world"
)

func launch(w *world.World, from, to r2.Point) {
	w.PointerDown(from)
	w.PointerMove(to)
	w.PointerUp()
}

var _ = Describe("World", func() {
	var (
		w      *world.World
		events []world.Event
	)

	BeforeEach(func() {
		var err error
		w, err = world.New(world.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		w.Resize(800, 600)
		events = nil
		w.AddObserver(world.ObserverFunc(func(e world.Event) { events = append(events, e) }))
	})

	Describe("New", func() {
		It("rejects invalid tunables", func() {
			cfg := world.DefaultConfig()
			cfg.FadeAlpha = 0
			_, err := world.New(cfg)
			Expect(errors.Is(err, world.ErrInvalidConfig)).To(BeTrue())

			cfg = world.DefaultConfig()
			cfg.Physics.MassDivisor = 0
			_, err = world.New(cfg)
			Expect(err).To(MatchError(world.ErrInvalidConfig))
		})
	})

	Describe("Resize", func() {
		It("rescales the attractor and leaves orbiters alone", func() {
			fresh, err := world.New(world.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.Attractor().Mass).To(BeZero())

			launch(fresh, r2.Point{X: 10, Y: 10}, r2.Point{X: 12, Y: 14})
			before := fresh.Orbiters()

			fresh.Resize(800, 600)
			a := fresh.Attractor()
			Expect(a.Mass).To(Equal(960.0))
			Expect(a.Pos).To(Equal(r2.Point{X: 400, Y: 300}))
			Expect(a.Radius).To(Equal(20.0))
			Expect(fresh.Orbiters()).To(Equal(before))
		})
	})

	Describe("launch controller", func() {
		It("starts idle and ignores moves and releases", func() {
			Expect(w.Gesture().State()).To(Equal(world.Idle))
			w.PointerMove(r2.Point{X: 5, Y: 5})
			Expect(w.Gesture().Active).To(BeFalse())
			Expect(w.PointerUp()).To(BeFalse())
			Expect(w.Len()).To(BeZero())
		})

		It("launches with the reversed drag vector", func() {
			w.PointerDown(r2.Point{X: 100, Y: 100})
			Expect(w.Gesture().State()).To(Equal(world.Dragging))
			Expect(w.Gesture().Current).To(Equal(r2.Point{X: 100, Y: 100}))

			w.PointerMove(r2.Point{X: 50, Y: 100})
			Expect(w.PointerUp()).To(BeTrue())
			Expect(w.Gesture().State()).To(Equal(world.Idle))

			views := w.Orbiters()
			Expect(views).To(HaveLen(1))
			Expect(views[0].Pos).To(Equal(r2.Point{X: 100, Y: 100}))
			Expect(views[0].Vel.X).To(BeNumerically("~", 5, 1e-12))
			Expect(views[0].Vel.Y).To(BeNumerically("~", 0, 1e-12))
			Expect(views[0].Radius).To(And(BeNumerically(">=", 1), BeNumerically("<", 3)))
			Expect(views[0].Trail).To(BeEmpty())

			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(world.Launched))
		})

		It("draws the drag line only while dragging", func() {
			w.PointerDown(r2.Point{X: 10, Y: 20})
			w.PointerMove(r2.Point{X: 30, Y: 40})

			rec := &recorder{}
			w.Tick(rec)
			Expect(rec.ops()).To(Equal([]string{"fade", "fill", "stroke", "dash"}))
			Expect(rec.calls[3].at).To(Equal(r2.Point{X: 10, Y: 20}))
			Expect(rec.calls[3].to).To(Equal(r2.Point{X: 30, Y: 40}))

			w.PointerUp()
			rec = &recorder{}
			w.Tick(rec)
			Expect(rec.ops()).NotTo(ContainElement("dash"))
		})
	})

	Describe("Tick", func() {
		It("fades instead of clearing and draws the attractor first", func() {
			rec := &recorder{}
			w.Tick(rec)
			Expect(rec.calls[0].op).To(Equal("fade"))
			Expect(rec.calls[0].radius).To(Equal(0.2))
			Expect(rec.calls[1].op).To(Equal("fill"))
			Expect(rec.calls[1].at).To(Equal(r2.Point{X: 400, Y: 300}))
			Expect(rec.calls[2].op).To(Equal("stroke"))
		})

		It("removes a captured orbiter in the same tick", func() {
			launch(w, r2.Point{X: 410, Y: 300}, r2.Point{X: 410, Y: 300})
			stats := w.Tick(&recorder{})

			Expect(w.Len()).To(BeZero())
			Expect(stats.Captured).To(Equal(1))
			Expect(stats.Launched).To(Equal(1))
			Expect(events[len(events)-1].Kind).To(Equal(world.Captured))
		})

		It("removes an escaped orbiter in the same tick", func() {
			launch(w, r2.Point{X: 100, Y: 100}, r2.Point{X: 30100, Y: 100})
			stats := w.Tick(&recorder{})

			Expect(w.Len()).To(BeZero())
			Expect(stats.Escaped).To(Equal(1))
			Expect(events[len(events)-1].Kind).To(Equal(world.Escaped))
		})

		It("keeps every trail within its bound", func() {
			launch(w, r2.Point{X: 400, Y: 100}, r2.Point{X: 378, Y: 100})
			launch(w, r2.Point{X: 700, Y: 300}, r2.Point{X: 700, Y: 320})
			for i := 0; i < 300; i++ {
				w.Tick(world.Discard)
				for _, v := range w.Orbiters() {
					Expect(len(v.Trail)).To(BeNumerically("<=", 20))
				}
			}
		})

		It("visits each survivor exactly once while removing others", func() {
			const n = 10
			for i := 0; i < n; i++ {
				p := r2.Point{X: 100, Y: float64(50 + 40*i)}
				if i%2 == 1 {
					p = r2.Point{X: 400 + float64(i), Y: 300}
				}
				launch(w, p, p)
			}

			rec := &recorder{}
			stats := w.Tick(rec)

			Expect(stats.Captured).To(Equal(n / 2))
			Expect(w.Len()).To(Equal(n / 2))
			heads := rec.heads()
			Expect(heads).To(HaveLen(n / 2))

			seen := map[float64]int{}
			for _, h := range heads {
				Expect(h.X).To(BeNumerically("<", 380))
				seen[h.Y]++
			}
			for _, count := range seen {
				Expect(count).To(Equal(1))
			}
			Expect(seen).To(HaveLen(n / 2))
		})

		It("lets observers clear the world from a removal event", func() {
			launch(w, r2.Point{X: 100, Y: 100}, r2.Point{X: 100, Y: 100})
			launch(w, r2.Point{X: 401, Y: 300}, r2.Point{X: 401, Y: 300})
			launch(w, r2.Point{X: 402, Y: 300}, r2.Point{X: 402, Y: 300})
			w.AddObserver(world.ObserverFunc(func(e world.Event) {
				if e.Kind == world.Captured {
					w.Clear()
				}
			}))

			var stats world.TickStats
			Expect(func() { stats = w.Tick(world.Discard) }).NotTo(Panic())
			Expect(stats.Captured).To(Equal(2))
			Expect(stats.Live).To(Equal(1))
			Expect(w.Len()).To(BeZero())
			Expect(events[len(events)-1].Frame).To(Equal(uint64(0)))
		})

		It("counts frames", func() {
			Expect(w.Frame()).To(BeZero())
			w.Tick(world.Discard)
			stats := w.Tick(world.Discard)
			Expect(stats.Frame).To(Equal(uint64(1)))
			Expect(w.Frame()).To(Equal(uint64(2)))
		})
	})

	Describe("Clear", func() {
		It("drops live orbiters silently", func() {
			launch(w, r2.Point{X: 100, Y: 100}, r2.Point{X: 90, Y: 100})
			events = nil
			w.Clear()
			Expect(w.Len()).To(BeZero())
			Expect(events).To(BeEmpty())
		})
	})

	Describe("Energies", func() {
		It("reports one value per live orbiter", func() {
			launch(w, r2.Point{X: 100, Y: 100}, r2.Point{X: 90, Y: 100})
			launch(w, r2.Point{X: 700, Y: 500}, r2.Point{X: 700, Y: 510})
			Expect(w.Energies(nil)).To(HaveLen(2))
		})

		It("leaves out an orbiter resting on the attractor centre", func() {
			launch(w, r2.Point{X: 400, Y: 300}, r2.Point{X: 400, Y: 300})
			launch(w, r2.Point{X: 100, Y: 100}, r2.Point{X: 90, Y: 100})

			energies := w.Energies(nil)
			Expect(energies).To(HaveLen(1))
			Expect(math.IsInf(energies[0], 0)).To(BeFalse())
			Expect(energies[0]).To(BeNumerically("<", 0))
		})
	})
})
