package scene

// Selection is the ordered set of currently selected entities. Order matters:
// the last entity added is the primary selection (gizmo anchor).
type Selection struct {
	Entities []EntityID `yaml:"entities,omitempty"`
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id EntityID) bool {
	for _, e := range s.Entities {
		if e == id {
			return true
		}
	}
	return false
}

// Add selects id if it is not already selected.
func (s *Selection) Add(id EntityID) {
	if !s.Contains(id) {
		s.Entities = append(s.Entities, id)
	}
}

// Remove deselects id.
func (s *Selection) Remove(id EntityID) {
	for i, e := range s.Entities {
		if e == id {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return
		}
	}
}

// Toggle flips the selection state of id.
func (s *Selection) Toggle(id EntityID) {
	if s.Contains(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.Entities = s.Entities[:0]
}

// Len returns the number of selected entities.
func (s *Selection) Len() int {
	return len(s.Entities)
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return len(s.Entities) == 0
}

// IDs returns the selected entities in selection order. The slice is a copy.
func (s *Selection) IDs() []EntityID {
	out := make([]EntityID, len(s.Entities))
	copy(out, s.Entities)
	return out
}

// First returns the first selected entity and true, or the zero ID and false.
func (s *Selection) First() (EntityID, bool) {
	if len(s.Entities) == 0 {
		return EntityID{}, false
	}
	return s.Entities[0], true
}

// Primary returns the primary (last selected) entity and true, or the zero
// ID and false.
func (s *Selection) Primary() (EntityID, bool) {
	if len(s.Entities) == 0 {
		return EntityID{}, false
	}
	return s.Entities[len(s.Entities)-1], true
}
