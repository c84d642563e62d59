// Package physics is the toy simulation behind play-mode preview: gravity,
// Euler integration and AABB separation over entities carrying a RigidBody
// component. It exists so "press play and watch things fall" works in a
// headless editor; a real engine swaps in its own playmode.Simulator.
package physics

import (
	"scene-editor/internal/scene"
)

// aabb is an axis-aligned box given by its min and max corners.
type aabb struct {
	min, max [3]float32
}

func (a aabb) overlaps(b aabb) bool {
	for i := 0; i < 3; i++ {
		if a.max[i] <= b.min[i] || b.max[i] <= a.min[i] {
			return false
		}
	}
	return true
}

// World holds a set of bodies and runs a simple 3D physics step: gravity,
// integration, AABB collision.
type World struct {
	Gravity [3]float32
	Bodies  []*Body
}

// NewWorld returns a physics world with default gravity (0, -9.8, 0); the
// scene is Y-up, so "down" is -Y.
func NewWorld() *World {
	return &World{Gravity: [3]float32{0, -9.8, 0}}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g [3]float32) {
	w.Gravity = g
}

// AddBody appends a body to the world. Order is preserved for syncing with
// scene entities.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// FromScene builds a world from every active entity carrying a RigidBody
// component. Kinematic bodies and entities marked static become static
// bodies. Scale doubles as the collision box size.
func FromScene(s *scene.Scene) *World {
	w := NewWorld()
	for _, id := range s.IDs() {
		data := s.Get(id)
		if data == nil || !data.Active {
			continue
		}
		for _, c := range data.Components {
			rb := c.RigidBody
			if rb == nil {
				continue
			}
			static := data.Static || rb.Kinematic
			body := NewBody(id, data.Transform.Position, data.Transform.Scale, rb.Mass, static)
			body.Gravity = rb.Gravity
			w.AddBody(body)
			break
		}
	}
	return w
}

// Apply writes simulated body positions back onto their scene entities.
func (w *World) Apply(s *scene.Scene) {
	for _, b := range w.Bodies {
		if data := s.Get(b.Entity); data != nil {
			data.Transform.Position = b.Position
		}
	}
}

// bodyAABB returns the AABB for a body (center position, half extents from
// scale; zero components default to 1).
func bodyAABB(b *Body) aabb {
	var box aabb
	for i := 0; i < 3; i++ {
		s := b.Scale[i]
		if s == 0 {
			s = 1
		}
		half := s * 0.5
		box.min[i] = b.Position[i] - half
		box.max[i] = b.Position[i] + half
	}
	return box
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z)
// for the minimum penetration, or (0, -1) when the boxes do not overlap.
func penetrationAxis(a, b aabb) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		lo, hi := a.min[i], a.max[i]
		if b.min[i] > lo {
			lo = b.min[i]
		}
		if b.max[i] < hi {
			hi = b.max[i]
		}
		overlap := hi - lo
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

// Step advances the simulation by dt seconds: gravity, integration, then
// AABB collisions. No global floor; dynamic bodies fall until they hit
// another body (e.g. a static ground plane).
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		for i := 0; i < 3; i++ {
			if b.Gravity {
				b.Velocity[i] += w.Gravity[i] * dt
			}
			b.Position[i] += b.Velocity[i] * dt
		}
	}

	// Resolve overlapping pairs by pushing apart along the minimum
	// penetration axis. Static bodies never move.
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		boxI := bodyAABB(bi)
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			boxJ := bodyAABB(bj)
			if !boxI.overlaps(boxJ) {
				continue
			}
			depth, axis := penetrationAxis(boxI, boxJ)
			if axis < 0 {
				continue
			}

			var moveI, moveJ float32
			switch {
			case bi.Static && bj.Static:
				continue
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}
			// Push the pair apart toward their center offset along the axis.
			if bi.Position[axis] > bj.Position[axis] {
				moveI, moveJ = -moveI, -moveJ
			}

			bi.Position[axis] += moveI
			bj.Position[axis] += moveJ
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
			boxI = bodyAABB(bi)
		}
	}
}
