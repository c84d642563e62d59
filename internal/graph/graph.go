package graph

import (
	"errors"
	"fmt"
)

// Connection and ordering errors. Connect reports the first failing check;
// TopologicalOrder reports ErrCycle without returning any partial order.
var (
	ErrNodeNotFound         = errors.New("node not found")
	ErrPortNotFound         = errors.New("port not found")
	ErrIncompatiblePorts    = errors.New("incompatible port types")
	ErrPortAlreadyConnected = errors.New("port already connected")
	ErrSelfLoop             = errors.New("self-loop not allowed")
	ErrCycle                = errors.New("graph contains a cycle")
)

// Graph owns a set of nodes and the connections between them. Both are kept
// in insertion order so saved files and UI listings are deterministic.
// Acyclicity is NOT enforced at connect time: cycles may exist transiently
// (feedback in gameplay graphs) and are only rejected when an evaluation
// order is requested.
type Graph struct {
	Name string

	nodes     map[NodeID]*Node
	nodeOrder []NodeID

	connections map[ConnectionID]*Connection
	connOrder   []ConnectionID
}

// New returns an empty graph with the given name.
func New(name string) *Graph {
	return &Graph{
		Name:        name,
		nodes:       make(map[NodeID]*Node),
		connections: make(map[ConnectionID]*Connection),
	}
}

// AddNode inserts a node (whose ID is already set) and returns its ID.
// A node with a duplicate ID replaces nothing and is ignored.
func (g *Graph) AddNode(node *Node) NodeID {
	if _, ok := g.nodes[node.ID]; ok {
		return node.ID
	}
	g.nodes[node.ID] = node
	g.nodeOrder = append(g.nodeOrder, node.ID)
	return node.ID
}

// RemoveNode deletes a node and cascades: every connection involving the
// node is purged first. Returns the removed node for undo, or nil if absent.
func (g *Graph) RemoveNode(id NodeID) *Node {
	node, ok := g.nodes[id]
	if !ok {
		return nil
	}
	kept := g.connOrder[:0]
	for _, cid := range g.connOrder {
		if g.connections[cid].InvolvesNode(id) {
			delete(g.connections, cid)
		} else {
			kept = append(kept, cid)
		}
	}
	g.connOrder = kept

	delete(g.nodes, id)
	for i, nid := range g.nodeOrder {
		if nid == id {
			g.nodeOrder = append(g.nodeOrder[:i], g.nodeOrder[i+1:]...)
			break
		}
	}
	return node
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []NodeID {
	out := make([]NodeID, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Connect validates and creates a connection from an output port to an
// input port. Checks run in order and the first failure wins:
// nodes exist, ports exist on their nodes, port types are compatible,
// a single-connect target is still free, and the endpoints are distinct
// nodes. On success a fresh ConnectionID is allocated and returned.
func (g *Graph) Connect(fromNode NodeID, fromPort PortID, toNode NodeID, toPort PortID) (ConnectionID, error) {
	source, ok := g.nodes[fromNode]
	if !ok {
		return ConnectionID{}, fmt.Errorf("%w: %s", ErrNodeNotFound, fromNode)
	}
	target, ok := g.nodes[toNode]
	if !ok {
		return ConnectionID{}, fmt.Errorf("%w: %s", ErrNodeNotFound, toNode)
	}

	sourcePort := source.Port(fromPort)
	if sourcePort == nil {
		return ConnectionID{}, fmt.Errorf("%w: %s", ErrPortNotFound, fromPort)
	}
	targetPort := target.Port(toPort)
	if targetPort == nil {
		return ConnectionID{}, fmt.Errorf("%w: %s", ErrPortNotFound, toPort)
	}

	if !sourcePort.CanConnect(targetPort) {
		return ConnectionID{}, fmt.Errorf("%w: %s -> %s", ErrIncompatiblePorts, sourcePort.Type, targetPort.Type)
	}

	if !targetPort.MultiConnect {
		for _, cid := range g.connOrder {
			if g.connections[cid].ToPort == toPort {
				return ConnectionID{}, fmt.Errorf("%w: %s", ErrPortAlreadyConnected, toPort)
			}
		}
	}

	if fromNode == toNode {
		return ConnectionID{}, ErrSelfLoop
	}

	conn := &Connection{
		ID:       NewConnectionID(),
		FromNode: fromNode,
		FromPort: fromPort,
		ToNode:   toNode,
		ToPort:   toPort,
	}
	g.connections[conn.ID] = conn
	g.connOrder = append(g.connOrder, conn.ID)
	return conn.ID, nil
}

// Disconnect removes a connection and returns it, or nil if absent.
func (g *Graph) Disconnect(id ConnectionID) *Connection {
	conn, ok := g.connections[id]
	if !ok {
		return nil
	}
	delete(g.connections, id)
	for i, cid := range g.connOrder {
		if cid == id {
			g.connOrder = append(g.connOrder[:i], g.connOrder[i+1:]...)
			break
		}
	}
	return conn
}

// Connection returns the connection with the given ID, or nil.
func (g *Graph) Connection(id ConnectionID) *Connection {
	return g.connections[id]
}

// Connections returns all connections in insertion order.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, 0, len(g.connOrder))
	for _, id := range g.connOrder {
		out = append(out, g.connections[id])
	}
	return out
}

// ConnectionCount returns the number of connections.
func (g *Graph) ConnectionCount() int {
	return len(g.connections)
}

// ConnectionsFrom returns connections whose source is the given port.
// Linear scan; typical graphs are tens of nodes.
func (g *Graph) ConnectionsFrom(port PortID) []*Connection {
	var out []*Connection
	for _, cid := range g.connOrder {
		if c := g.connections[cid]; c.FromPort == port {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsTo returns connections whose target is the given port.
func (g *Graph) ConnectionsTo(port PortID) []*Connection {
	var out []*Connection
	for _, cid := range g.connOrder {
		if c := g.connections[cid]; c.ToPort == port {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsForNode returns connections touching the given node.
func (g *Graph) ConnectionsForNode(id NodeID) []*Connection {
	var out []*Connection
	for _, cid := range g.connOrder {
		if c := g.connections[cid]; c.InvolvesNode(id) {
			out = append(out, c)
		}
	}
	return out
}

// TopologicalOrder returns the node IDs in dependency order: every
// producer precedes its consumers, so an evaluator can run nodes front to
// back. Uses a three-color depth-first search; hitting a node already on
// the current path means a cycle, and the whole sort fails with ErrCycle —
// no partial order is ever returned.
func (g *Graph) TopologicalOrder() ([]NodeID, error) {
	visited := make(map[NodeID]bool, len(g.nodes))
	onPath := make(map[NodeID]bool)
	order := make([]NodeID, 0, len(g.nodes))

	for _, id := range g.nodeOrder {
		if !visited[id] {
			if err := g.visit(id, visited, onPath, &order); err != nil {
				return nil, err
			}
		}
	}

	// Post-order gives consumers first; reverse for dependency order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

func (g *Graph) visit(id NodeID, visited, onPath map[NodeID]bool, order *[]NodeID) error {
	if onPath[id] {
		return ErrCycle
	}
	if visited[id] {
		return nil
	}

	onPath[id] = true
	for _, cid := range g.connOrder {
		c := g.connections[cid]
		if c.FromNode == id {
			if err := g.visit(c.ToNode, visited, onPath, order); err != nil {
				return err
			}
		}
	}
	delete(onPath, id)

	visited[id] = true
	*order = append(*order, id)
	return nil
}
