// Package prefab implements reusable entity templates: a prefab captures
// an entity subtree with stable local IDs, and instances stamped from it
// record where each local ID landed in the live scene plus any per-instance
// property overrides.
package prefab

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"scene-editor/internal/scene"
)

// FormatVersion is the prefab file format version.
const FormatVersion = 1

// PrefabEntity is one node of a prefab's entity tree. LocalID is stable
// within the prefab across saves, so instances can map their live
// entities back to template nodes.
type PrefabEntity struct {
	LocalID    uint32            `yaml:"localId"`
	Name       string            `yaml:"name"`
	Transform  scene.Transform   `yaml:"transform"`
	Components []scene.Component `yaml:"components,omitempty"`
	Children   []PrefabEntity    `yaml:"children,omitempty"`
}

// Prefab is a named, versioned entity template rooted at a single entity.
type Prefab struct {
	ID      uuid.UUID    `yaml:"id"`
	Name    string       `yaml:"name"`
	Version int          `yaml:"version"`
	Root    PrefabEntity `yaml:"root"`
}

// New returns an empty prefab with a bare root node.
func New(name string) *Prefab {
	return &Prefab{
		ID:      uuid.New(),
		Name:    name,
		Version: FormatVersion,
		Root: PrefabEntity{
			Name:      "Root",
			Transform: scene.DefaultTransform(),
		},
	}
}

// FromEntities captures the subtree rooted at root from the scene as a
// prefab. Local IDs are assigned in pre-order starting at zero.
func FromEntities(name string, root scene.EntityID, s *scene.Scene) (*Prefab, error) {
	data := s.Get(root)
	if data == nil {
		return nil, fmt.Errorf("prefab source entity not found: %s", root)
	}

	var counter uint32
	p := &Prefab{
		ID:      uuid.New(),
		Name:    name,
		Version: FormatVersion,
		Root:    captureEntity(data, s, &counter),
	}
	return p, nil
}

func captureEntity(data *scene.EntityData, s *scene.Scene, counter *uint32) PrefabEntity {
	localID := *counter
	*counter++

	var children []PrefabEntity
	for _, childID := range data.Children {
		if child := s.Get(childID); child != nil {
			children = append(children, captureEntity(child, s, counter))
		}
	}

	return PrefabEntity{
		LocalID:    localID,
		Name:       data.Name,
		Transform:  data.Transform,
		Components: data.Components,
		Children:   children,
	}
}

// EntityCount returns the number of nodes in the template tree.
func (p *Prefab) EntityCount() int {
	return countEntities(&p.Root)
}

func countEntities(e *PrefabEntity) int {
	n := 1
	for i := range e.Children {
		n += countEntities(&e.Children[i])
	}
	return n
}

// Instantiate stamps the prefab into fresh entity records, parents wired,
// in pre-order (root first). The returned map records which live ID each
// local ID received; the root's record is always first.
func (p *Prefab) Instantiate() ([]scene.EntityRecord, map[uint32]scene.EntityID) {
	idMap := make(map[uint32]scene.EntityID)
	var records []scene.EntityRecord
	instantiateEntity(&p.Root, nil, idMap, &records)
	return records, idMap
}

func instantiateEntity(node *PrefabEntity, parent *scene.EntityID, idMap map[uint32]scene.EntityID, records *[]scene.EntityRecord) scene.EntityID {
	id := scene.NewEntityID()
	idMap[node.LocalID] = id

	data := scene.NewEntityData(node.Name)
	data.Transform = node.Transform
	data.Components = node.Components
	data.Parent = parent

	// Reserve the record slot so children appear after their parent.
	*records = append(*records, scene.EntityRecord{ID: id, Data: data})
	idx := len(*records) - 1

	var childIDs []scene.EntityID
	for i := range node.Children {
		childIDs = append(childIDs, instantiateEntity(&node.Children[i], &id, idMap, records))
	}
	(*records)[idx].Data.Children = childIDs
	return id
}

// Save writes the prefab as YAML to path.
func (p *Prefab) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefab: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a YAML prefab file from path. Files with a newer format
// version than this build understands are rejected.
func Load(path string) (*Prefab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Prefab
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prefab %s: %w", path, err)
	}
	if p.Version > FormatVersion {
		return nil, fmt.Errorf("prefab %s: unsupported format version %d", path, p.Version)
	}
	return &p, nil
}
