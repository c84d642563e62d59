package physics

import "scene-editor/internal/scene"

// Body is a 3D rigid body with position, velocity, and AABB (from scale).
// Static bodies do not move and are not affected by gravity. Entity links
// the body back to the scene entity it simulates.
type Body struct {
	Entity   scene.EntityID
	Position [3]float32
	Velocity [3]float32
	Scale    [3]float32
	Mass     float32
	Static   bool
	Gravity  bool
}

// NewBody returns a body with the given position and scale. Velocity is zero.
// mass is used for collision response; use 1 for default.
func NewBody(entity scene.EntityID, position, scale [3]float32, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Entity:   entity,
		Position: position,
		Scale:    scale,
		Mass:     mass,
		Static:   static,
		Gravity:  true,
	}
}
