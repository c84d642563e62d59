package graph

import (
	"github.com/google/uuid"
)

// ConnectionID uniquely identifies a connection within a graph.
type ConnectionID struct {
	uuid.UUID
}

// NewConnectionID returns a fresh random connection ID.
func NewConnectionID() ConnectionID {
	return ConnectionID{uuid.New()}
}

// Connection links an output port to an input port. The node IDs are stored
// alongside the port IDs so per-node queries don't need a port-to-node
// index. A connection lives until it is explicitly disconnected or either
// endpoint node is removed.
type Connection struct {
	ID       ConnectionID `yaml:"id"`
	FromNode NodeID       `yaml:"fromNode"`
	FromPort PortID       `yaml:"fromPort"`
	ToNode   NodeID       `yaml:"toNode"`
	ToPort   PortID       `yaml:"toPort"`
}

// InvolvesNode reports whether the connection touches the given node.
func (c *Connection) InvolvesNode(id NodeID) bool {
	return c.FromNode == id || c.ToNode == id
}

// InvolvesPort reports whether the connection touches the given port.
func (c *Connection) InvolvesPort(id PortID) bool {
	return c.FromPort == id || c.ToPort == id
}
