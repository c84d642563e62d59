package prefab

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"scene-editor/internal/scene"
)

// Manager caches loaded prefabs by path and tracks which scene subtrees
// are live instances of them.
type Manager struct {
	prefabs   map[string]*Prefab
	instances map[scene.EntityID]*PrefabInstance
	log       *logrus.Entry
}

// NewManager returns an empty prefab manager.
func NewManager() *Manager {
	return &Manager{
		prefabs:   make(map[string]*Prefab),
		instances: make(map[scene.EntityID]*PrefabInstance),
		log:       logrus.WithField("system", "prefab"),
	}
}

// LoadPrefab reads a prefab from path, caching it for later lookups.
func (m *Manager) LoadPrefab(path string) (*Prefab, error) {
	if p, ok := m.prefabs[path]; ok {
		return p, nil
	}
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	m.prefabs[path] = p
	return p, nil
}

// Prefab returns the cached prefab for path, or nil.
func (m *Manager) Prefab(path string) *Prefab {
	return m.prefabs[path]
}

// ReloadPrefab re-reads a prefab from disk, replacing the cached copy.
// Existing instances keep their id maps; only the template changes.
func (m *Manager) ReloadPrefab(path string) error {
	p, err := Load(path)
	if err != nil {
		return err
	}
	m.prefabs[path] = p
	m.log.WithField("path", path).Info("prefab reloaded")
	return nil
}

// InstantiateInto stamps a prefab into the scene and registers the
// resulting instance. Returns the root entity ID of the new subtree.
func (m *Manager) InstantiateInto(path string, s *scene.Scene) (scene.EntityID, error) {
	p, err := m.LoadPrefab(path)
	if err != nil {
		return scene.EntityID{}, err
	}

	records, idMap := p.Instantiate()
	if len(records) == 0 {
		return scene.EntityID{}, fmt.Errorf("prefab %s has no entities", path)
	}
	for _, rec := range records {
		s.Insert(rec.ID, rec.Data)
	}

	root := records[0].ID
	m.RegisterInstance(NewInstance(root, path, idMap))
	return root, nil
}

// RegisterInstance records a stamped instance keyed by its root entity.
func (m *Manager) RegisterInstance(inst *PrefabInstance) {
	m.instances[inst.RootEntity] = inst
}

// UnregisterInstance forgets the instance rooted at root. The live
// entities stay in the scene as ordinary entities (prefab unpacking).
func (m *Manager) UnregisterInstance(root scene.EntityID) {
	delete(m.instances, root)
}

// Instance returns the instance rooted at root, or nil.
func (m *Manager) Instance(root scene.EntityID) *PrefabInstance {
	return m.instances[root]
}

// FindInstanceContaining returns the instance whose subtree includes id,
// or nil.
func (m *Manager) FindInstanceContaining(id scene.EntityID) *PrefabInstance {
	for _, inst := range m.instances {
		if inst.ContainsEntity(id) {
			return inst
		}
	}
	return nil
}

// IsPrefabEntity reports whether id belongs to any registered instance.
func (m *Manager) IsPrefabEntity(id scene.EntityID) bool {
	return m.FindInstanceContaining(id) != nil
}

// IsPrefabRoot reports whether id is the root of a registered instance.
func (m *Manager) IsPrefabRoot(id scene.EntityID) bool {
	_, ok := m.instances[id]
	return ok
}

// Instances returns all registered instances.
func (m *Manager) Instances() []*PrefabInstance {
	out := make([]*PrefabInstance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	return out
}

// Clear drops all cached prefabs and instances (scene close).
func (m *Manager) Clear() {
	m.prefabs = make(map[string]*Prefab)
	m.instances = make(map[scene.EntityID]*PrefabInstance)
}
