package scene

import (
	"github.com/google/uuid"
)

// EntityID uniquely identifies an entity within the editor. IDs are random
// 128-bit values so they stay stable across save/load and undo/redo; they
// carry identity only, never ordering.
type EntityID struct {
	uuid.UUID
}

// NewEntityID returns a fresh random entity ID.
func NewEntityID() EntityID {
	return EntityID{uuid.New()}
}

// IsNil reports whether the ID is the zero value.
func (id EntityID) IsNil() bool {
	return id.UUID == uuid.Nil
}

// Transform is position, rotation (euler angles in degrees) and scale.
type Transform struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    [3]float32 `yaml:"scale"`
}

// DefaultTransform returns the identity transform (origin, no rotation, unit scale).
func DefaultTransform() Transform {
	return Transform{Scale: [3]float32{1, 1, 1}}
}

// EntityData is everything the editor stores per entity. Parent and Children
// must stay symmetric: if A.Parent points at B then B.Children contains A.
// Code that reparents entities updates both sides together.
type EntityData struct {
	Name       string      `yaml:"name"`
	Active     bool        `yaml:"active"`
	Static     bool        `yaml:"static"`
	Transform  Transform   `yaml:"transform"`
	Parent     *EntityID   `yaml:"parent,omitempty"`
	Children   []EntityID  `yaml:"children,omitempty"`
	Components []Component `yaml:"components,omitempty"`
}

// NewEntityData returns entity data with the given name, active, non-static,
// identity transform and no hierarchy links.
func NewEntityData(name string) EntityData {
	return EntityData{
		Name:      name,
		Active:    true,
		Transform: DefaultTransform(),
	}
}

// Scene holds all entities keyed by ID with insertion order preserved, so
// iteration (hierarchy panel, "select all") is deterministic. The order/index
// pair follows the usual ordered-map layout: a key slice for order plus a
// map for O(1) lookup.
type Scene struct {
	entities map[EntityID]*EntityData
	order    []EntityID
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{entities: make(map[EntityID]*EntityData)}
}

// Add inserts data under a fresh ID and returns that ID.
func (s *Scene) Add(data EntityData) EntityID {
	id := NewEntityID()
	s.Insert(id, data)
	return id
}

// Insert adds data under the given ID. It returns false (and leaves the
// scene unchanged) if the ID is already present. Commands that replay
// saved operations insert with pre-allocated IDs.
func (s *Scene) Insert(id EntityID, data EntityData) bool {
	if s.entities == nil {
		s.entities = make(map[EntityID]*EntityData)
	}
	if _, ok := s.entities[id]; ok {
		return false
	}
	d := data
	s.entities[id] = &d
	s.order = append(s.order, id)
	return true
}

// Get returns the entity data for id, or nil if absent. The pointer aliases
// scene storage; mutations through it are visible immediately.
func (s *Scene) Get(id EntityID) *EntityData {
	return s.entities[id]
}

// Contains reports whether id is in the scene.
func (s *Scene) Contains(id EntityID) bool {
	_, ok := s.entities[id]
	return ok
}

// Remove deletes the entity and returns its data, or nil if absent.
// It does not touch parent/children links; callers that need the
// hierarchy repaired do that themselves (see editor.DeleteCommand).
func (s *Scene) Remove(id EntityID) *EntityData {
	data, ok := s.entities[id]
	if !ok {
		return nil
	}
	delete(s.entities, id)
	for i, k := range s.order {
		if k == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return data
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// IDs returns all entity IDs in insertion order. The slice is a copy.
func (s *Scene) IDs() []EntityID {
	out := make([]EntityID, len(s.order))
	copy(out, s.order)
	return out
}

// Roots returns the IDs of entities with no parent, in insertion order.
func (s *Scene) Roots() []EntityID {
	var roots []EntityID
	for _, id := range s.order {
		if s.entities[id].Parent == nil {
			roots = append(roots, id)
		}
	}
	return roots
}

// CollectWithDescendants returns ids plus all their transitive children in
// pre-order. Each entity appears at most once even if ids overlap.
func (s *Scene) CollectWithDescendants(ids []EntityID) []EntityID {
	visited := make(map[EntityID]bool)
	var collected []EntityID
	for _, id := range ids {
		s.collectDescendants(id, &collected, visited)
	}
	return collected
}

func (s *Scene) collectDescendants(id EntityID, collected *[]EntityID, visited map[EntityID]bool) {
	if visited[id] {
		return
	}
	visited[id] = true
	*collected = append(*collected, id)
	if data := s.entities[id]; data != nil {
		for _, child := range data.Children {
			s.collectDescendants(child, collected, visited)
		}
	}
}

// AttachToParent appends id to parent's children list (if the parent exists
// and the link is not already there). A nil parent is a no-op; the entity
// stays at the root.
func (s *Scene) AttachToParent(id EntityID, parent *EntityID) {
	if parent == nil {
		return
	}
	p := s.entities[*parent]
	if p == nil {
		return
	}
	for _, c := range p.Children {
		if c == id {
			return
		}
	}
	p.Children = append(p.Children, id)
}

// DetachFromParent removes id from its parent's children list, if any.
// The entity's own Parent pointer is left for the caller to update.
func (s *Scene) DetachFromParent(id EntityID) {
	data := s.entities[id]
	if data == nil || data.Parent == nil {
		return
	}
	if p := s.entities[*data.Parent]; p != nil {
		for i, c := range p.Children {
			if c == id {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
}
