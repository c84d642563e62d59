package sequencer

import "scene-editor/internal/scene"

// EntityBinding associates a track with a target in the live scene. The
// sequencer only carries the reference; applying evaluated values to the
// bound entity is the job of whatever system consumes the track output.
type EntityBinding struct {
	Entity    scene.EntityID `yaml:"entity"`
	Component string         `yaml:"component,omitempty"`
	Property  string         `yaml:"property,omitempty"`
}

// BindEntity binds a track to an entity as a whole.
func BindEntity(id scene.EntityID) *EntityBinding {
	return &EntityBinding{Entity: id}
}

// BindComponent binds a track to one component of an entity.
func BindComponent(id scene.EntityID, component string) *EntityBinding {
	return &EntityBinding{Entity: id, Component: component}
}

// BindProperty binds a track to a property path within a component.
func BindProperty(id scene.EntityID, component, property string) *EntityBinding {
	return &EntityBinding{Entity: id, Component: component, Property: property}
}
