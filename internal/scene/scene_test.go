package scene_test

import (
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/lucasb-eyer/go-colorful"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/physics"
	"github.com/san-kum/cubedrop/internal/scene"
)

type fill struct {
	color     colorful.Color
	rect      scene.Rect
	transform cp.Transform
}

type recorder struct {
	clears []colorful.Color
	fills  []fill
}

func (r *recorder) Clear(c colorful.Color) { r.clears = append(r.clears, c) }

func (r *recorder) FillRect(c colorful.Color, rect scene.Rect, t cp.Transform) {
	r.fills = append(r.fills, fill{color: c, rect: rect, transform: t})
}

func newScene(cfg *config.Config) *scene.Scene {
	s := scene.New(cfg)
	s.Init()
	return s
}

var _ = Describe("Scene", func() {
	var (
		cfg *config.Config
		s   *scene.Scene
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		s = newScene(cfg)
	})

	Describe("New", func() {
		It("starts empty with downward gravity", func() {
			empty := scene.New(cfg)
			Expect(empty.Cubes()).To(BeEmpty())
			Expect(empty.World().Len()).To(Equal(0))
			Expect(empty.World().Gravity()).To(Equal(cp.Vector{X: 0, Y: 9.81}))
			Expect(empty.Timer()).To(BeZero())
			Expect(empty.GroundY()).To(Equal(440.0))
			Expect(empty.TimeScale()).To(Equal(4.0))
		})
	})

	Describe("Init", func() {
		It("lays out thirteen cubes", func() {
			Expect(s.Cubes()).To(HaveLen(13))
			Expect(s.World().Bodies(physics.Dynamic)).To(HaveLen(len(s.Cubes())))
		})

		It("makes the last cube the drag target", func() {
			target, ok := s.Controlled()
			Expect(ok).To(BeTrue())
			Expect(target).To(Equal(s.Cubes()[len(s.Cubes())-1]))
			Expect(target.Radius).To(Equal(50.0))
			Expect(s.World().Velocity(target.Body)).To(Equal(cp.Vector{X: 0.2, Y: 0}))
			Expect(s.World().Position(target.Body)).To(Equal(cp.Vector{X: 10, Y: 415}))
		})

		It("stacks 40px cubes upward from the ground", func() {
			cubes := s.Cubes()
			Expect(cubes[0].Radius).To(Equal(40.0))
			Expect(s.World().Position(cubes[0].Body)).To(Equal(cp.Vector{X: 400, Y: 420}))
			Expect(s.World().Position(cubes[5].Body)).To(Equal(cp.Vector{X: 400, Y: 220}))
			Expect(s.World().Position(cubes[6].Body)).To(Equal(cp.Vector{X: 360, Y: 420}))
		})

		It("adds four static boundaries forming a box", func() {
			w := s.World()
			Expect(s.Boundaries()).To(HaveLen(4))
			for _, id := range s.Boundaries() {
				Expect(w.Kind(id)).To(Equal(physics.Static))
			}
			Expect(w.Position(s.Boundaries()[0])).To(Equal(cp.Vector{X: 0, Y: 440}))
			Expect(w.Position(s.Boundaries()[3])).To(Equal(cp.Vector{X: 640, Y: 0}))
		})
	})

	Describe("Update", func() {
		DescribeTable("steps the world by exactly dt times four",
			func(dt float64) {
				s.Update(dt)
				Expect(s.World().LastStep()).To(Equal(dt * 4))
				Expect(s.World().Steps()).To(Equal(1))
			},
			Entry("zero", 0.0),
			Entry("one frame at 60fps", 1.0/60),
			Entry("slow frame", 0.1),
			Entry("odd value", 0.0123),
		)

		It("accumulates unscaled time", func() {
			s.Update(0.25)
			s.Update(0.5)
			Expect(s.Timer()).To(Equal(0.75))
			Expect(s.World().Elapsed()).To(Equal(3.0))
		})
	})

	Describe("Drag", func() {
		It("applies the cursor delta to the drag target", func() {
			target, _ := s.Controlled()
			s.World().SetPosition(target.Body, cp.Vector{X: 90, Y: 190})

			delta := s.Drag(cp.Vector{X: 100, Y: 200})

			Expect(delta).To(Equal(cp.Vector{X: 10, Y: 10}))
			Expect(s.World().Position(target.Body)).To(Equal(cp.Vector{X: 100, Y: 200}))
		})

		It("resets the drag target rotation", func() {
			target, _ := s.Controlled()
			s.World().SetRotation(target.Body, 0.7)
			s.World().SetAngularVelocity(target.Body, 3)

			s.Drag(cp.Vector{X: 50, Y: 50})

			Expect(s.World().Rotation(target.Body)).To(BeZero())
			Expect(s.World().AngularVelocity(target.Body)).To(BeZero())
		})

		It("leaves other cubes alone", func() {
			first := s.Cubes()[0]
			before := s.World().Position(first.Body)
			s.Drag(cp.Vector{X: 300, Y: 100})
			Expect(s.World().Position(first.Body)).To(Equal(before))
		})

		It("keeps the drag target unrotated through every step", func() {
			target, _ := s.Controlled()
			cursor := cp.Vector{X: 380, Y: 300}
			for i := 0; i < 240; i++ {
				cursor.X = 300 + 80*math.Sin(float64(i)/20)
				s.Drag(cursor)
				s.Update(1.0 / 60)
				Expect(s.World().Rotation(target.Body)).To(BeZero(), "frame %d", i)
			}
		})

		It("is a no-op without a drag target", func() {
			cfg.Scene.Drag = nil
			s = newScene(cfg)

			_, ok := s.Controlled()
			Expect(ok).To(BeFalse())
			Expect(s.Cubes()).To(HaveLen(12))
			Expect(s.Drag(cp.Vector{X: 100, Y: 100})).To(Equal(cp.Vector{}))
		})
	})

	Describe("boundaries", func() {
		It("never move across updates and drags", func() {
			w := s.World()
			before := make([]cp.Vector, 0, len(s.Boundaries()))
			for _, id := range s.Boundaries() {
				before = append(before, w.Position(id))
			}

			for i := 0; i < 300; i++ {
				s.Drag(cp.Vector{X: float64(i % 640), Y: float64(i % 440)})
				s.Update(1.0 / 60)
			}

			for i, id := range s.Boundaries() {
				Expect(w.Position(id)).To(Equal(before[i]))
				Expect(w.Rotation(id)).To(BeZero())
			}
		})
	})

	Describe("Render", func() {
		var rec *recorder

		BeforeEach(func() {
			rec = &recorder{}
			s.Render(rec)
		})

		It("clears once with the background color", func() {
			colors := cfg.Palette.MustColors()
			Expect(rec.clears).To(Equal([]colorful.Color{colors.Background}))
		})

		It("draws one rectangle per cube plus the ground", func() {
			Expect(rec.fills).To(HaveLen(len(s.Cubes()) + 1))
		})

		It("draws the ground strip last with no transform", func() {
			colors := cfg.Palette.MustColors()
			last := rec.fills[len(rec.fills)-1]
			Expect(last.rect).To(Equal(scene.Rect{X: 0, Y: 440, W: 1000, H: 50}))
			Expect(last.transform).To(Equal(cp.NewTransformIdentity()))
			Expect(last.color).To(Equal(colors.Ground))
		})

		It("centres each cube square on its body", func() {
			colors := cfg.Palette.MustColors()
			for i, cube := range s.Cubes() {
				f := rec.fills[i]
				Expect(f.color).To(Equal(colors.Cube))
				Expect(f.rect).To(Equal(scene.Square(0, 0, cube.Radius)))
				centre := f.transform.Point(cp.Vector{X: cube.Radius / 2, Y: cube.Radius / 2})
				pos := s.World().Position(cube.Body)
				Expect(centre.X).To(BeNumerically("~", pos.X, 1e-9))
				Expect(centre.Y).To(BeNumerically("~", pos.Y, 1e-9))
			}
		})
	})
})

var _ = Describe("Decompose", func() {
	It("recovers position and angle of a rigid transform", func() {
		t := cp.NewTransformTranslate(cp.Vector{X: 100, Y: 50}).
			Mult(cp.NewTransformRotate(math.Pi / 2)).
			Mult(cp.NewTransformTranslate(cp.Vector{X: -20, Y: -20}))

		origin, angle := scene.Decompose(scene.Square(0, 0, 40), t)

		Expect(angle).To(BeNumerically("~", math.Pi/2, 1e-12))
		Expect(origin.X).To(BeNumerically("~", 120, 1e-9))
		Expect(origin.Y).To(BeNumerically("~", 30, 1e-9))
	})

	It("maps corners clockwise from the top-left", func() {
		corners := scene.Corners(scene.Rect{X: 0, Y: 440, W: 1000, H: 50}, cp.NewTransformIdentity())
		Expect(corners).To(Equal([4]cp.Vector{
			{X: 0, Y: 440}, {X: 1000, Y: 440}, {X: 1000, Y: 490}, {X: 0, Y: 490},
		}))
	})
})
