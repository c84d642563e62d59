package graph

import (
	"fmt"
)

// NodeOutput holds the values a node produced, keyed by output port.
type NodeOutput struct {
	Values map[PortID]PortValue
}

// NewNodeOutput returns an empty output set.
func NewNodeOutput() NodeOutput {
	return NodeOutput{Values: make(map[PortID]PortValue)}
}

// Set records a value for an output port.
func (o *NodeOutput) Set(port PortID, v PortValue) {
	o.Values[port] = v
}

// Get returns the value for an output port and whether it was set.
func (o *NodeOutput) Get(port PortID) (PortValue, bool) {
	v, ok := o.Values[port]
	return v, ok
}

// NodeEvaluator executes the logic of a single node. Implementations live
// outside this package (a shader compiler, a gameplay VM); the graph only
// guarantees the ordering contract: by the time a node is evaluated, all
// its producers already have outputs in the context.
type NodeEvaluator interface {
	Evaluate(node *Node, ctx *EvalContext) (NodeOutput, error)
}

// EvalContext caches node outputs during a single evaluation pass over a
// graph. It is built from a successful topological sort; a graph with a
// cycle cannot be evaluated.
type EvalContext struct {
	graph   *Graph
	outputs map[NodeID]NodeOutput
	order   []NodeID
}

// NewEvalContext computes the evaluation order for g. Fails with ErrCycle
// if no order exists.
func NewEvalContext(g *Graph) (*EvalContext, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	return &EvalContext{
		graph:   g,
		outputs: make(map[NodeID]NodeOutput),
		order:   order,
	}, nil
}

// Order returns the evaluation order (producers before consumers).
func (c *EvalContext) Order() []NodeID {
	return c.order
}

// SetOutput records a node's outputs after it has been evaluated.
func (c *EvalContext) SetOutput(node NodeID, out NodeOutput) {
	c.outputs[node] = out
}

// Input returns the value arriving at an input port via its connection,
// if the producing node has been evaluated.
func (c *EvalContext) Input(port PortID) (PortValue, bool) {
	conns := c.graph.ConnectionsTo(port)
	if len(conns) == 0 {
		return PortValue{}, false
	}
	conn := conns[0]
	out, ok := c.outputs[conn.FromNode]
	if !ok {
		return PortValue{}, false
	}
	return out.Get(conn.FromPort)
}

// InputOrDefault returns the connected value for an input port, falling
// back to the port's declared default.
func (c *EvalContext) InputOrDefault(node NodeID, port PortID) (PortValue, bool) {
	if v, ok := c.Input(port); ok {
		return v, true
	}
	n := c.graph.Node(node)
	if n == nil {
		return PortValue{}, false
	}
	p := n.Port(port)
	if p == nil || p.Default == nil {
		return PortValue{}, false
	}
	return *p.Default, true
}

// Run evaluates every node in dependency order using the given evaluator
// and returns the outputs of the last node in the order (typically the
// graph's output node).
func (c *EvalContext) Run(eval NodeEvaluator) (NodeOutput, error) {
	var last NodeOutput
	for _, id := range c.order {
		node := c.graph.Node(id)
		if node == nil {
			return NodeOutput{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
		out, err := eval.Evaluate(node, c)
		if err != nil {
			return NodeOutput{}, fmt.Errorf("evaluate %s: %w", node.Name, err)
		}
		c.SetOutput(id, out)
		last = out
	}
	return last, nil
}
