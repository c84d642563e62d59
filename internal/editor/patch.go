package editor

import (
	"scene-editor/internal/history"
	"scene-editor/internal/scene"
)

// Patch is the typed payload inside every snapshot the editor commits.
// A command's before/after snapshots are each one encoded Patch; undo
// and redo decode and re-apply them without knowing which command
// produced them. Sections are applied in a fixed order: inserts first
// so later sections can reference restored entities, removals last.
type Patch struct {
	Insert     []scene.EntityRecord
	Transforms []TransformPatch
	Parents    []ParentPatch
	Props      []PropertyPatch
	Remove     []scene.EntityID
}

// TransformPatch sets one entity's full transform.
type TransformPatch struct {
	Entity    scene.EntityID
	Transform TransformData
}

// ParentPatch moves one entity under a new parent (nil for root).
type ParentPatch struct {
	Entity scene.EntityID
	Parent *scene.EntityID
}

// PropertyPatch sets one field of one component on one entity.
type PropertyPatch struct {
	Entity    scene.EntityID
	Component string
	Field     string
	Value     PropertyValue
}

// PropertyKind discriminates the payload of a PropertyValue.
type PropertyKind string

const (
	PropFloat  PropertyKind = "float"
	PropBool   PropertyKind = "bool"
	PropString PropertyKind = "string"
	PropVec3   PropertyKind = "vec3"
)

// PropertyValue is a tagged value for property edits: Kind selects which
// payload field is live.
type PropertyValue struct {
	Kind   PropertyKind
	Float  float32
	Bool   bool
	String string
	Vec3   [3]float32
}

func FloatProp(v float32) PropertyValue { return PropertyValue{Kind: PropFloat, Float: v} }

func BoolProp(v bool) PropertyValue { return PropertyValue{Kind: PropBool, Bool: v} }

func StringProp(v string) PropertyValue { return PropertyValue{Kind: PropString, String: v} }

func Vec3Prop(v [3]float32) PropertyValue { return PropertyValue{Kind: PropVec3, Vec3: v} }

// IsEmpty reports whether the patch would change nothing.
func (p *Patch) IsEmpty() bool {
	return len(p.Insert) == 0 && len(p.Transforms) == 0 &&
		len(p.Parents) == 0 && len(p.Props) == 0 && len(p.Remove) == 0
}

// snapshot encodes the patch for the history ledger.
func (p *Patch) snapshot() (history.StateSnapshot, error) {
	return history.SnapshotValue(p)
}

// applyPatch replays a decoded patch against the scene. Entities that no
// longer exist are skipped rather than failing the whole patch: a patch
// from deep in the undo stack may legitimately reference entities a later
// operation removed.
func (e *Editor) applyPatch(p *Patch) {
	for _, rec := range p.Insert {
		if !e.Scene.Insert(rec.ID, rec.Data) {
			continue
		}
		e.Scene.AttachToParent(rec.ID, rec.Data.Parent)
	}

	for _, tp := range p.Transforms {
		if data := e.Scene.Get(tp.Entity); data != nil {
			data.Transform = tp.Transform.ToTransform()
		}
	}

	for _, pp := range p.Parents {
		e.setParent(pp.Entity, pp.Parent)
	}

	for _, prop := range p.Props {
		e.applyProperty(&prop)
	}

	for _, id := range p.Remove {
		e.Scene.DetachFromParent(id)
		e.Scene.Remove(id)
		e.Selection.Remove(id)
	}
}

func (e *Editor) setParent(id scene.EntityID, parent *scene.EntityID) {
	data := e.Scene.Get(id)
	if data == nil {
		return
	}
	e.Scene.DetachFromParent(id)
	data.Parent = parent
	e.Scene.AttachToParent(id, parent)
}

// applyProperty routes a property patch to the matching entity field.
// Unknown paths are ignored with a warning; a stale patch must not make
// undo fail halfway.
func (e *Editor) applyProperty(p *PropertyPatch) {
	data := e.Scene.Get(p.Entity)
	if data == nil {
		return
	}
	if !setEntityProperty(data, p.Component, p.Field, p.Value) {
		e.log.Warnf("unsupported property edit %s.%s", p.Component, p.Field)
	}
}

// setEntityProperty applies one property value, reporting whether the
// component/field path is supported.
func setEntityProperty(data *scene.EntityData, component, field string, v PropertyValue) bool {
	switch component {
	case "Transform", "transform":
		return setTransformField(&data.Transform, field, v)
	case "Entity", "entity":
		switch field {
		case "name":
			if v.Kind != PropString {
				return false
			}
			data.Name = v.String
			return true
		case "active":
			if v.Kind != PropBool {
				return false
			}
			data.Active = v.Bool
			return true
		case "static":
			if v.Kind != PropBool {
				return false
			}
			data.Static = v.Bool
			return true
		}
	}
	return false
}

func setTransformField(t *scene.Transform, field string, v PropertyValue) bool {
	switch field {
	case "position":
		if v.Kind != PropVec3 {
			return false
		}
		t.Position = v.Vec3
		return true
	case "rotation":
		if v.Kind != PropVec3 {
			return false
		}
		t.Rotation = v.Vec3
		return true
	case "scale":
		if v.Kind != PropVec3 {
			return false
		}
		t.Scale = v.Vec3
		return true
	}

	if v.Kind != PropFloat {
		return false
	}
	switch field {
	case "position.x":
		t.Position[0] = v.Float
	case "position.y":
		t.Position[1] = v.Float
	case "position.z":
		t.Position[2] = v.Float
	case "rotation.x":
		t.Rotation[0] = v.Float
	case "rotation.y":
		t.Rotation[1] = v.Float
	case "rotation.z":
		t.Rotation[2] = v.Float
	case "scale.x":
		t.Scale[0] = v.Float
	case "scale.y":
		t.Scale[1] = v.Float
	case "scale.z":
		t.Scale[2] = v.Float
	default:
		return false
	}
	return true
}
