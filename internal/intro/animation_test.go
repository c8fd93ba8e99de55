package intro_test

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gleam/internal/dynamo"
	"github.com/san-kum/gleam/internal/intro"
)

const frame = 16 * time.Millisecond

var _ = Describe("Animation", func() {
	var (
		anim *intro.Animation
		vp   intro.Viewport
		now  time.Duration
	)

	step := func(dt float64) intro.Frame {
		now += time.Duration(dt * float64(time.Second))
		return anim.Update(dt, now)
	}

	BeforeEach(func() {
		now = 0
		vp = intro.NewViewport(1000, 600, 1)
		anim = intro.NewAnimation(intro.DefaultTuning(), rand.New(rand.NewSource(7)))
		Expect(anim.Resize(vp)).To(Succeed())
	})

	Describe("starting a run", func() {
		It("enters carve from off-screen left", func() {
			Expect(anim.Phase()).To(Equal(intro.Carve))
			Expect(anim.Head().X).To(Equal(-250.0))
			Expect(anim.Head().Y).To(BeNumerically(">=", 210.0))
			Expect(anim.Head().Y).To(BeNumerically("<=", 390.0))
			Expect(anim.Velocity()).To(Equal(dynamo.V(620, 0)))
			Expect(anim.TrailLen()).To(BeZero())
			Expect(anim.Runs()).To(Equal(1))
		})

		It("places the first waypoint inside the carve band", func() {
			t := anim.Target()
			Expect(t.X).To(BeNumerically(">=", 150.0))
			Expect(t.X).To(BeNumerically("<=", 920.0))
			Expect(t.Y).To(BeNumerically(">=", 108.0))
			Expect(t.Y).To(BeNumerically("<=", 492.0))
		})

		It("rejects an empty viewport", func() {
			Expect(anim.Resize(intro.NewViewport(0, 600, 1))).To(MatchError(dynamo.ErrInvalidViewport))
		})
	})

	Describe("waypoints", func() {
		It("alternate sides of mid-height when reached", func() {
			mid := vp.H / 2
			for i := 0; i < 6; i++ {
				before := anim.Target()
				anim.SetHead(before, anim.Velocity())
				step(frame.Seconds())

				after := anim.Target()
				Expect(after).NotTo(Equal(before))
				Expect(math.Signbit(after.Y - mid)).NotTo(Equal(math.Signbit(before.Y - mid)))
			}
		})
	})

	Describe("liveness", func() {
		DescribeTable("exits after the run duration regardless of progress",
			func(n int) {
				dt := 6.0 / float64(n)
				for i := 0; i < n-1; i++ {
					step(dt)
					Expect(anim.Phase()).To(Equal(intro.Carve))
				}
				step(dt)
				Expect(anim.Phase()).NotTo(Equal(intro.Carve))
			},
			Entry("one step", 1),
			Entry("uneven steps", 7),
			Entry("50ms frames", 120),
			Entry("16ms-ish frames", 375),
			Entry("1ms frames", 6000),
		)
	})

	Describe("retarget watchdog", func() {
		It("abandons an unreachable waypoint after the timeout", func() {
			unreachable := dynamo.V(500, -5000)
			anim.SetTarget(unreachable)

			for i := 0; i < 4; i++ {
				step(0.25)
				Expect(anim.Target()).To(Equal(unreachable))
			}

			step(0.25)
			Expect(anim.Target()).NotTo(Equal(unreachable))
			Expect(anim.Retargets()).To(Equal(1))
			Expect(anim.TimeSinceTarget()).To(BeZero())
		})
	})

	Describe("exit", func() {
		BeforeEach(func() {
			anim.SetHead(dynamo.V(0.9*vp.W, 0.5*vp.H), dynamo.V(620, 0))
			anim.BeginExit()
		})

		It("aims past the right edge", func() {
			t := anim.Target()
			Expect(anim.Phase()).To(Equal(intro.Exit))
			Expect(t.X).To(BeNumerically(">=", 1.35*vp.W))
			Expect(t.X).To(BeNumerically(">=", 0.9*vp.W+0.6*vp.W))
			Expect(t.Y).To(BeNumerically(">=", 0.15*vp.H))
			Expect(t.Y).To(BeNumerically("<=", 0.85*vp.H))
		})

		It("clears once the head is past 1.25w", func() {
			var f intro.Frame
			for i := 0; i < 200 && anim.Phase() == intro.Exit; i++ {
				f = step(frame.Seconds())
			}

			Expect(anim.Phase()).To(Equal(intro.Clear))
			Expect(anim.Head().X).To(BeNumerically(">", 1.25*vp.W))
			Expect(anim.TrailLen()).To(BeZero())
			Expect(f.HardClear).To(BeTrue())
		})

		It("restarts on the next frame when there is no pause", func() {
			for anim.Phase() != intro.Clear {
				step(frame.Seconds())
			}

			f := step(frame.Seconds())
			Expect(f.Blank).To(BeTrue())
			Expect(anim.Phase()).To(Equal(intro.Carve))
			Expect(anim.Runs()).To(Equal(2))
			Expect(anim.Head().X).To(Equal(-0.25 * vp.W))
		})
	})

	Describe("clear pause", func() {
		It("holds the blank surface until the pause has elapsed", func() {
			tun := intro.DefaultTuning()
			tun.ClearPause = 100 * time.Millisecond
			anim = intro.NewAnimation(tun, rand.New(rand.NewSource(3)))
			Expect(anim.Resize(vp)).To(Succeed())

			anim.SetHead(dynamo.V(vp.W*1.3, vp.H/2), dynamo.V(620, 0))
			anim.BeginExit()
			step(frame.Seconds())
			Expect(anim.Phase()).To(Equal(intro.Clear))
			Expect(anim.ClearUntil()).To(Equal(now + 100*time.Millisecond))

			f := step(0.05)
			Expect(f.Blank).To(BeTrue())
			Expect(anim.Phase()).To(Equal(intro.Clear))

			step(0.05)
			Expect(anim.Phase()).To(Equal(intro.Carve))
		})
	})

	Describe("invariants over many runs", func() {
		It("keeps constant speed and a bounded trail", func() {
			dts := []float64{0.001, 0.016, 0.033, 0.05, 0.008}
			runs := 0
			for i := 0; i < 6000; i++ {
				f := step(dts[i%len(dts)])
				if f.Blank {
					continue
				}
				Expect(math.Abs(f.Vel.Len() - 620)).To(BeNumerically("<", 1e-9))
				Expect(len(f.Trail)).To(BeNumerically("<=", 90))
				Expect(f.Head.IsValid()).To(BeTrue())
				if n := len(f.Trail); n > 0 && f.Phase != intro.Clear {
					Expect(f.Trail[n-1].Pos).To(Equal(f.Head))
				}
				runs = f.Run
			}
			Expect(runs).To(BeNumerically(">", 1))
		})
	})

	Describe("zero-distance guard", func() {
		It("keeps the previous heading when the target sits on the head", func() {
			p := dynamo.V(500, 300)
			anim.SetHead(p, dynamo.V(0, 620))
			anim.SetTarget(p)

			f := step(frame.Seconds())
			Expect(f.Vel.IsValid()).To(BeTrue())
			Expect(f.Vel.X).To(BeNumerically("~", 0, 1e-9))
			Expect(f.Vel.Y).To(BeNumerically("~", 620, 1e-9))
		})
	})

	Describe("color crossfade", func() {
		It("free-runs across restarts", func() {
			for i := 0; i < 40; i++ {
				step(0.05)
			}
			mix := anim.Colors().Mix()
			Expect(mix).To(BeNumerically(">", 0))

			anim.StartNewRun()
			Expect(anim.Colors().Mix()).To(Equal(mix))
		})
	})
})
