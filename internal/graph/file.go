package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// graphDoc is the on-disk form of a graph: flat node and connection lists
// in insertion order.
type graphDoc struct {
	Name        string       `yaml:"name"`
	Nodes       []Node       `yaml:"nodes,omitempty"`
	Connections []Connection `yaml:"connections,omitempty"`
}

// MarshalYAML encodes the graph as ordered node and connection lists.
func (g *Graph) MarshalYAML() (any, error) {
	doc := graphDoc{Name: g.Name}
	for _, id := range g.nodeOrder {
		doc.Nodes = append(doc.Nodes, *g.nodes[id])
	}
	for _, id := range g.connOrder {
		doc.Connections = append(doc.Connections, *g.connections[id])
	}
	return doc, nil
}

// UnmarshalYAML rebuilds the graph's ordered maps from the flat lists.
// Connections referencing unknown nodes are rejected.
func (g *Graph) UnmarshalYAML(node *yaml.Node) error {
	var doc graphDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}

	g.Name = doc.Name
	g.nodes = make(map[NodeID]*Node, len(doc.Nodes))
	g.nodeOrder = g.nodeOrder[:0]
	g.connections = make(map[ConnectionID]*Connection, len(doc.Connections))
	g.connOrder = g.connOrder[:0]

	for i := range doc.Nodes {
		n := doc.Nodes[i]
		g.AddNode(&n)
	}
	for i := range doc.Connections {
		c := doc.Connections[i]
		if _, ok := g.nodes[c.FromNode]; !ok {
			return fmt.Errorf("connection %s: %w: %s", c.ID, ErrNodeNotFound, c.FromNode)
		}
		if _, ok := g.nodes[c.ToNode]; !ok {
			return fmt.Errorf("connection %s: %w: %s", c.ID, ErrNodeNotFound, c.ToNode)
		}
		g.connections[c.ID] = &c
		g.connOrder = append(g.connOrder, c.ID)
	}
	return nil
}

// Save writes the graph as YAML to path.
func (g *Graph) Save(path string) error {
	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a YAML graph file from path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := New("")
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parse graph %s: %w", path, err)
	}
	return g, nil
}
