package prefab

import (
	"scene-editor/internal/scene"
)

// PropertyOverride records one property diverging from the template on a
// particular instance. EntityPath addresses the template node by local
// ID, PropertyPath the field within it.
type PropertyOverride struct {
	EntityPath   string `yaml:"entityPath"`
	PropertyPath string `yaml:"propertyPath"`
}

// PrefabInstance links a stamped subtree in the live scene back to its
// prefab file: which entity is the root, where each local ID landed, and
// which properties have been overridden.
type PrefabInstance struct {
	RootEntity scene.EntityID            `yaml:"rootEntity"`
	PrefabPath string                    `yaml:"prefabPath"`
	IDMap      map[uint32]scene.EntityID `yaml:"idMap"`
	Overrides  []PropertyOverride        `yaml:"overrides,omitempty"`
}

// NewInstance links a stamped id map to its source prefab file.
func NewInstance(root scene.EntityID, prefabPath string, idMap map[uint32]scene.EntityID) *PrefabInstance {
	return &PrefabInstance{
		RootEntity: root,
		PrefabPath: prefabPath,
		IDMap:      idMap,
	}
}

// IsOverridden reports whether the given property diverges from the
// template on this instance.
func (i *PrefabInstance) IsOverridden(entityPath, propertyPath string) bool {
	for _, o := range i.Overrides {
		if o.EntityPath == entityPath && o.PropertyPath == propertyPath {
			return true
		}
	}
	return false
}

// SetOverride marks a property as overridden. Duplicate marks are
// collapsed.
func (i *PrefabInstance) SetOverride(o PropertyOverride) {
	if i.IsOverridden(o.EntityPath, o.PropertyPath) {
		return
	}
	i.Overrides = append(i.Overrides, o)
}

// RemoveOverride clears one override mark.
func (i *PrefabInstance) RemoveOverride(entityPath, propertyPath string) {
	for idx, o := range i.Overrides {
		if o.EntityPath == entityPath && o.PropertyPath == propertyPath {
			i.Overrides = append(i.Overrides[:idx], i.Overrides[idx+1:]...)
			return
		}
	}
}

// RevertAll clears every override mark.
func (i *PrefabInstance) RevertAll() {
	i.Overrides = nil
}

// ContainsEntity reports whether the live entity belongs to this instance.
func (i *PrefabInstance) ContainsEntity(id scene.EntityID) bool {
	for _, e := range i.IDMap {
		if e == id {
			return true
		}
	}
	return false
}

// LocalID maps a live entity back to its template node's local ID.
func (i *PrefabInstance) LocalID(id scene.EntityID) (uint32, bool) {
	for local, e := range i.IDMap {
		if e == id {
			return local, true
		}
	}
	return 0, false
}

// EntityIDs returns all live entity IDs belonging to this instance.
func (i *PrefabInstance) EntityIDs() []scene.EntityID {
	out := make([]scene.EntityID, 0, len(i.IDMap))
	for _, e := range i.IDMap {
		out = append(out, e)
	}
	return out
}
