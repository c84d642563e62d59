package scene

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatVersion is the current scene file format version. Loaders accept any
// version up to this one; newer optional fields default on older files.
const FormatVersion = 1

// SceneFile wraps scene data with versioning and metadata for serialization.
// Timestamps are RFC 3339.
type SceneFile struct {
	Version     int    `yaml:"version"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Created     string `yaml:"created,omitempty"`
	Modified    string `yaml:"modified,omitempty"`
	Scene       *Scene `yaml:"scene"`
}

// NewSceneFile returns a scene file wrapping an empty scene with current
// timestamps.
func NewSceneFile(name string) *SceneFile {
	now := time.Now().UTC().Format(time.RFC3339)
	return &SceneFile{
		Version:  FormatVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Scene:    NewScene(),
	}
}

// FromScene wraps existing scene data in a file envelope.
func FromScene(name string, s *Scene) *SceneFile {
	f := NewSceneFile(name)
	f.Scene = s
	return f
}

// Touch updates the modified timestamp.
func (f *SceneFile) Touch() {
	f.Modified = time.Now().UTC().Format(time.RFC3339)
}

// Save writes the scene file as YAML to path.
func (f *SceneFile) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSceneFile reads a YAML scene file from path.
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if f.Version > FormatVersion {
		return nil, fmt.Errorf("scene %s: unsupported format version %d", path, f.Version)
	}
	if f.Scene == nil {
		f.Scene = NewScene()
	}
	return &f, nil
}

// sceneEntry is the on-disk form of one entity: the ID alongside its data,
// listed in scene insertion order.
type sceneEntry struct {
	ID     EntityID   `yaml:"id"`
	Entity EntityData `yaml:"entity"`
}

// MarshalYAML encodes the scene as an ordered entity list.
func (s *Scene) MarshalYAML() (any, error) {
	entries := make([]sceneEntry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, sceneEntry{ID: id, Entity: *s.entities[id]})
	}
	return entries, nil
}

// UnmarshalYAML rebuilds the ordered map from the entity list.
func (s *Scene) UnmarshalYAML(node *yaml.Node) error {
	var entries []sceneEntry
	if err := node.Decode(&entries); err != nil {
		return err
	}
	s.entities = make(map[EntityID]*EntityData, len(entries))
	s.order = s.order[:0]
	for _, e := range entries {
		if !s.Insert(e.ID, e.Entity) {
			return fmt.Errorf("duplicate entity id %s", e.ID)
		}
	}
	return nil
}
