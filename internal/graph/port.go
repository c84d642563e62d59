// Package graph implements the node-graph model used by the material and
// gameplay script editors: typed ports, validated connections, and the
// dependency ordering an evaluator consumes. Nodes, ports and connections
// reference each other by opaque IDs through maps owned by the Graph, never
// by direct pointers.
package graph

import (
	"github.com/google/uuid"
)

// PortID uniquely identifies a port. Port IDs are unique within the whole
// graph, not just within their node, so connections can reference ports
// directly.
type PortID struct {
	uuid.UUID
}

// NewPortID returns a fresh random port ID.
func NewPortID() PortID {
	return PortID{uuid.New()}
}

// Direction says which way data flows through a port.
type Direction string

const (
	Input  Direction = "input"
	Output Direction = "output"
)

// PortType is the data type flowing through a port.
type PortType string

const (
	TypeExec    PortType = "exec"
	TypeBool    PortType = "bool"
	TypeInt     PortType = "int"
	TypeFloat   PortType = "float"
	TypeString  PortType = "string"
	TypeVector2 PortType = "vector2"
	TypeVector3 PortType = "vector3"
	TypeVector4 PortType = "vector4"
	TypeColor   PortType = "color"
	TypeTexture PortType = "texture"
	TypeAny     PortType = "any"
)

// CanConnectTo reports whether a value of type t can flow into a port of
// type other: the types must be equal, or either side is Any.
func (t PortType) CanConnectTo(other PortType) bool {
	if t == TypeAny || other == TypeAny {
		return true
	}
	return t == other
}

// Color returns the UI tint for ports of this type.
func (t PortType) Color() [3]uint8 {
	switch t {
	case TypeExec:
		return [3]uint8{200, 200, 200}
	case TypeBool:
		return [3]uint8{200, 80, 80}
	case TypeInt:
		return [3]uint8{80, 200, 200}
	case TypeFloat:
		return [3]uint8{80, 200, 80}
	case TypeString:
		return [3]uint8{200, 180, 150}
	case TypeVector2:
		return [3]uint8{200, 200, 80}
	case TypeVector3:
		return [3]uint8{200, 150, 80}
	case TypeVector4:
		return [3]uint8{200, 100, 200}
	case TypeColor:
		return [3]uint8{255, 200, 100}
	case TypeTexture:
		return [3]uint8{100, 150, 200}
	}
	return [3]uint8{150, 150, 150}
}

// Port is one input or output on a node. An input with MultiConnect false
// accepts at most one incoming connection; outputs default to
// multi-connect since one value can feed many consumers.
type Port struct {
	ID           PortID     `yaml:"id"`
	Name         string     `yaml:"name"`
	Type         PortType   `yaml:"type"`
	Direction    Direction  `yaml:"direction"`
	MultiConnect bool       `yaml:"multiConnect"`
	Default      *PortValue `yaml:"default,omitempty"`
}

// InputPort returns a new single-connect input port with a fresh ID.
func InputPort(name string, t PortType) Port {
	return Port{
		ID:        NewPortID(),
		Name:      name,
		Type:      t,
		Direction: Input,
	}
}

// OutputPort returns a new multi-connect output port with a fresh ID.
func OutputPort(name string, t PortType) Port {
	return Port{
		ID:           NewPortID(),
		Name:         name,
		Type:         t,
		Direction:    Output,
		MultiConnect: true,
	}
}

// WithDefault sets the port's default value and returns the port.
func (p Port) WithDefault(v PortValue) Port {
	p.Default = &v
	return p
}

// CanConnect reports whether this port and other could be linked: opposite
// directions and compatible types.
func (p *Port) CanConnect(other *Port) bool {
	if p.Direction == other.Direction {
		return false
	}
	return p.Type.CanConnectTo(other.Type)
}

// PortValue is a concrete value carried by a port. Kind selects which field
// holds the payload; the rest stay at their zero values.
type PortValue struct {
	Kind    PortType   `yaml:"kind"`
	Bool    bool       `yaml:"bool,omitempty"`
	Int     int32      `yaml:"int,omitempty"`
	Float   float32    `yaml:"float,omitempty"`
	String  string     `yaml:"string,omitempty"`
	Vector2 [2]float32 `yaml:"vector2,omitempty"`
	Vector3 [3]float32 `yaml:"vector3,omitempty"`
	Vector4 [4]float32 `yaml:"vector4,omitempty"`
	Color   [4]float32 `yaml:"color,omitempty"`
}

// BoolValue returns a bool port value.
func BoolValue(v bool) PortValue { return PortValue{Kind: TypeBool, Bool: v} }

// IntValue returns an int port value.
func IntValue(v int32) PortValue { return PortValue{Kind: TypeInt, Int: v} }

// FloatValue returns a float port value.
func FloatValue(v float32) PortValue { return PortValue{Kind: TypeFloat, Float: v} }

// StringValue returns a string port value.
func StringValue(v string) PortValue { return PortValue{Kind: TypeString, String: v} }

// Vector2Value returns a 2D vector port value.
func Vector2Value(v [2]float32) PortValue { return PortValue{Kind: TypeVector2, Vector2: v} }

// Vector3Value returns a 3D vector port value.
func Vector3Value(v [3]float32) PortValue { return PortValue{Kind: TypeVector3, Vector3: v} }

// Vector4Value returns a 4D vector port value.
func Vector4Value(v [4]float32) PortValue { return PortValue{Kind: TypeVector4, Vector4: v} }

// ColorValue returns an RGBA color port value.
func ColorValue(v [4]float32) PortValue { return PortValue{Kind: TypeColor, Color: v} }
