package metrics

import (
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/san-kum/cubedrop/internal/scene"
)

// Sample is a snapshot of the scene after one update.
type Sample struct {
	Frame int
	Time  float64
	// KineticEnergy sums every cube except the drag target, whose velocity
	// is overridden by the cursor each frame.
	KineticEnergy float64
	// StackHeight is how far the highest free cube top sits above the ground.
	StackHeight float64
	Target      cp.Vector
}

func Take(s *scene.Scene) Sample {
	w := s.World()
	target, hasTarget := s.Controlled()

	sample := Sample{Time: s.Timer()}
	top := s.GroundY()
	for _, c := range s.Cubes() {
		if hasTarget && c.Body == target.Body {
			continue
		}
		sample.KineticEnergy += w.KineticEnergy(c.Body)
		top = math.Min(top, w.Position(c.Body).Y-c.Radius/2)
	}
	sample.StackHeight = math.Max(0, s.GroundY()-top)
	if hasTarget {
		sample.Target = w.Position(target.Body)
	}
	return sample
}
