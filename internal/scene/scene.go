package scene

import (
	"github.com/jakecoffman/cp/v2"
	"github.com/san-kum/cubedrop/internal/config"
	"github.com/san-kum/cubedrop/internal/physics"
)

// noTarget marks a scene without a drag target.
const noTarget = -1

// Scene owns the physics world and the cubes drawn from it.
type Scene struct {
	world      *physics.World
	cubes      []Cube
	boundaries []physics.BodyID
	controlled int

	timer     float64
	groundY   float64
	timeScale float64

	layout  config.SceneConfig
	palette config.Colors
}

// New builds an empty scene: a world with the configured gravity and no bodies.
// The palette is expected to have passed cfg.Validate.
func New(cfg *config.Config) *Scene {
	world := physics.NewWorld(cp.Vector{X: cfg.Physics.Gravity.X, Y: cfg.Physics.Gravity.Y})
	world.SetIterations(cfg.Physics.Iterations)
	return &Scene{
		world:      world,
		cubes:      make([]Cube, 0, cfg.Scene.CubeCount()),
		controlled: noTarget,
		groundY:    cfg.Scene.GroundY,
		timeScale:  cfg.Physics.TimeScale,
		layout:     cfg.Scene,
		palette:    cfg.Palette.MustColors(),
	}
}

// Init lays out the boundary planes, the cube stacks and the drag cube.
func (s *Scene) Init() {
	material := physics.Material{
		Friction:    s.layout.Material.Friction,
		Restitution: s.layout.Material.Restitution,
	}

	for _, p := range s.layout.Boundaries {
		offset := cp.Vector{X: p.Offset.X, Y: p.Offset.Y}
		if p.FromGround {
			offset.Y = s.groundY
		}
		id := s.world.AddPlane(physics.Plane{
			Normal:   cp.Vector{X: p.Normal.X, Y: p.Normal.Y},
			Offset:   offset,
			Material: material,
		})
		s.boundaries = append(s.boundaries, id)
	}

	for _, st := range s.layout.Stacks {
		for i := 0; i < st.Count; i++ {
			y := s.groundY - st.Size*float64(i) - st.Size/2
			id := s.world.AddBox(physics.Box{
				Position: cp.Vector{X: st.X, Y: y},
				Width:    st.Size,
				Height:   st.Size,
				Density:  st.Density,
				Material: material,
			})
			s.cubes = append(s.cubes, Cube{Body: id, Radius: st.Size})
		}
	}

	if d := s.layout.Drag; d != nil {
		id := s.world.AddBox(physics.Box{
			Position:      cp.Vector{X: d.X, Y: s.groundY - d.Size/2},
			Width:         d.Size,
			Height:        d.Size,
			Density:       d.Density,
			Material:      material,
			FixedRotation: true,
		})
		s.world.SetVelocity(id, cp.Vector{X: d.Velocity.X, Y: d.Velocity.Y})
		s.cubes = append(s.cubes, Cube{Body: id, Radius: d.Size})
		s.controlled = len(s.cubes) - 1
	}
}

// Update advances the world by dt scaled with the configured time scale.
func (s *Scene) Update(dt float64) {
	s.timer += dt
	s.world.Step(dt * s.timeScale)
}

// Drag moves the drag target onto cursor and clears its rotation. It returns
// the displacement applied, or zero when the scene has no drag target.
func (s *Scene) Drag(cursor cp.Vector) cp.Vector {
	cube, ok := s.Controlled()
	if !ok {
		return cp.Vector{}
	}
	delta := cursor.Sub(s.world.Position(cube.Body))
	s.world.Translate(cube.Body, delta)
	s.world.SetRotation(cube.Body, 0)
	s.world.SetAngularVelocity(cube.Body, 0)
	return delta
}

// Render clears the frame, draws every cube, then the ground strip on top.
func (s *Scene) Render(c Canvas) {
	c.Clear(s.palette.Background)
	for _, cube := range s.cubes {
		cube.Render(c, s.world, s.palette.Cube)
	}
	c.FillRect(s.palette.Ground, s.GroundRect(), cp.NewTransformIdentity())
}

func (s *Scene) GroundRect() Rect {
	g := s.layout.Ground
	return Rect{X: g.X, Y: s.groundY, W: g.Width, H: g.Height}
}

func (s *Scene) World() *physics.World { return s.world }

// Cubes returns the cube list in creation order. Callers must not modify it.
func (s *Scene) Cubes() []Cube { return s.cubes }

func (s *Scene) Boundaries() []physics.BodyID { return s.boundaries }

// Controlled returns the drag target, if the scene has one.
func (s *Scene) Controlled() (Cube, bool) {
	if s.controlled == noTarget {
		return Cube{}, false
	}
	return s.cubes[s.controlled], true
}

// Timer is the unscaled frame time accumulated by Update.
func (s *Scene) Timer() float64 { return s.timer }

func (s *Scene) GroundY() float64 { return s.groundY }

func (s *Scene) TimeScale() float64 { return s.timeScale }
