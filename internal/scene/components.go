package scene

// Component is one attachable piece of entity behavior. Exactly one of the
// pointer fields is set; the others stay nil so the YAML form reads as
// a small tagged record (e.g. "light: {...}").
type Component struct {
	Light        *Light        `yaml:"light,omitempty"`
	Camera       *Camera       `yaml:"camera,omitempty"`
	MeshRenderer *MeshRenderer `yaml:"meshRenderer,omitempty"`
	RigidBody    *RigidBody    `yaml:"rigidBody,omitempty"`
}

// Light types supported by the renderer.
const (
	LightDirectional = "directional"
	LightPoint       = "point"
	LightSpot        = "spot"
)

// Light is a light source component.
type Light struct {
	Type      string     `yaml:"type"`
	Color     [4]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Range     float32    `yaml:"range,omitempty"`
}

// Camera is a perspective camera component.
type Camera struct {
	Fov  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	Main bool    `yaml:"main,omitempty"`
}

// MeshRenderer references mesh and material assets by path.
type MeshRenderer struct {
	Mesh     string `yaml:"mesh"`
	Material string `yaml:"material,omitempty"`
}

// RigidBody carries the physics parameters handed to the (external)
// play-mode simulator. The editor only stores them.
type RigidBody struct {
	Mass      float32 `yaml:"mass"`
	Kinematic bool    `yaml:"kinematic,omitempty"`
	Gravity   bool    `yaml:"gravity"`
}

// TypeID returns a stable string identifying which component kind this is,
// or "" for an empty component.
func (c Component) TypeID() string {
	switch {
	case c.Light != nil:
		return "light"
	case c.Camera != nil:
		return "camera"
	case c.MeshRenderer != nil:
		return "mesh_renderer"
	case c.RigidBody != nil:
		return "rigidbody"
	}
	return ""
}

// DisplayName returns the human-readable name shown in the inspector.
func (c Component) DisplayName() string {
	switch c.TypeID() {
	case "light":
		return "Light"
	case "camera":
		return "Camera"
	case "mesh_renderer":
		return "Mesh Renderer"
	case "rigidbody":
		return "Rigid Body"
	}
	return "Component"
}

// HasComponent reports whether the entity already carries a component of
// the given type id.
func (e *EntityData) HasComponent(typeID string) bool {
	for _, c := range e.Components {
		if c.TypeID() == typeID {
			return true
		}
	}
	return false
}
