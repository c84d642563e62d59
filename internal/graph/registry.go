package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeCategory groups node types in the palette.
type NodeCategory string

const (
	CategoryInput   NodeCategory = "input"
	CategoryOutput  NodeCategory = "output"
	CategoryMath    NodeCategory = "math"
	CategoryTexture NodeCategory = "texture"
	CategoryLogic   NodeCategory = "logic"
	CategoryUtility NodeCategory = "utility"
	CategoryCustom  NodeCategory = "custom"
)

// PortDef is the declaration of one port in a node type: name and data
// type, with an optional default for inputs. Fresh PortIDs are allocated
// each time a node is instantiated.
type PortDef struct {
	Name    string     `yaml:"name"`
	Type    PortType   `yaml:"type"`
	Multi   bool       `yaml:"multi,omitempty"`
	Default *PortValue `yaml:"default,omitempty"`
}

// NodeType describes a kind of node that can be placed in a graph: its
// string type id (e.g. "material_output"), display name, category and
// default ports.
type NodeType struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Category    NodeCategory `yaml:"category"`
	Description string       `yaml:"description,omitempty"`
	Inputs      []PortDef    `yaml:"inputs,omitempty"`
	Outputs     []PortDef    `yaml:"outputs,omitempty"`
}

// Instantiate creates a node of this type with fresh node and port IDs.
func (t *NodeType) Instantiate() *Node {
	node := NewNode(t.ID, t.Name)
	for _, def := range t.Inputs {
		p := InputPort(def.Name, def.Type)
		p.MultiConnect = def.Multi
		p.Default = def.Default
		node.AddInput(p)
	}
	for _, def := range t.Outputs {
		p := OutputPort(def.Name, def.Type)
		if def.Multi {
			p.MultiConnect = true
		}
		p.Default = def.Default
		node.AddOutput(p)
	}
	return node
}

// Registry holds the available node types by string id, in registration
// order. Where the types come from (built-ins, YAML files, plugins) is up
// to the caller; the graph itself never consults the registry.
type Registry struct {
	types map[string]*NodeType
	order []string
}

// NewRegistry returns an empty node type registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*NodeType)}
}

// Register adds or replaces a node type.
func (r *Registry) Register(t NodeType) {
	if _, ok := r.types[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	cp := t
	r.types[t.ID] = &cp
}

// Get returns the node type with the given id, or nil.
func (r *Registry) Get(id string) *NodeType {
	return r.types[id]
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []*NodeType {
	out := make([]*NodeType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out
}

// TypesInCategory returns registered types of the given category, in
// registration order.
func (r *Registry) TypesInCategory(c NodeCategory) []*NodeType {
	var out []*NodeType
	for _, id := range r.order {
		if t := r.types[id]; t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// CreateNode instantiates a node of the given type id, or returns an error
// if the type is unknown.
func (r *Registry) CreateNode(typeID string) (*Node, error) {
	t := r.types[typeID]
	if t == nil {
		return nil, fmt.Errorf("unknown node type: %s", typeID)
	}
	return t.Instantiate(), nil
}

// LoadTypes reads node type definitions from a YAML file and registers
// them. The file holds a list of NodeType documents.
func (r *Registry) LoadTypes(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var types []NodeType
	if err := yaml.Unmarshal(data, &types); err != nil {
		return fmt.Errorf("parse node types %s: %w", path, err)
	}
	for _, t := range types {
		r.Register(t)
	}
	return nil
}
