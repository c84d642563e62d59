package physics

import "scene-editor/internal/scene"

// Simulator adapts the physics world to the play-mode step interface: each
// step rebuilds bodies from the scene (so entities spawned or edited between
// steps are picked up), carries velocities over from the previous step, and
// writes resulting positions back.
type Simulator struct {
	Gravity    [3]float32
	velocities map[scene.EntityID][3]float32
}

// NewSimulator returns a simulator with default gravity.
func NewSimulator() *Simulator {
	return &Simulator{
		Gravity:    [3]float32{0, -9.8, 0},
		velocities: make(map[scene.EntityID][3]float32),
	}
}

// Step advances all rigid bodies in the scene by dt seconds.
func (sim *Simulator) Step(dt float32, s *scene.Scene) {
	w := FromScene(s)
	w.Gravity = sim.Gravity
	for _, b := range w.Bodies {
		if v, ok := sim.velocities[b.Entity]; ok {
			b.Velocity = v
		}
	}

	w.Step(dt)
	w.Apply(s)

	next := make(map[scene.EntityID][3]float32, len(w.Bodies))
	for _, b := range w.Bodies {
		next[b.Entity] = b.Velocity
	}
	sim.velocities = next
}
