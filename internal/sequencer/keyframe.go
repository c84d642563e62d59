// Package sequencer implements the timeline animation model: keyframed
// tracks grouped into sequences, time-based evaluation with several
// interpolation modes, and a playback controller that drives time and
// emits event triggers. Evaluation is pure: the same (track, time) pair
// always yields the same value, so scrubbing and seeking need no special
// handling.
package sequencer

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// KeyframeID uniquely identifies a keyframe within a track.
type KeyframeID struct {
	uuid.UUID
}

// NewKeyframeID returns a fresh random keyframe ID.
func NewKeyframeID() KeyframeID {
	return KeyframeID{uuid.New()}
}

// IsNil reports whether the ID is the zero value.
func (id KeyframeID) IsNil() bool {
	return id.UUID == uuid.Nil
}

// InterpolationMode selects how a keyframe blends into its successor.
type InterpolationMode string

const (
	// InterpConstant holds the keyframe's value until the next keyframe.
	InterpConstant InterpolationMode = "constant"
	// InterpLinear blends component-wise (spherically for quaternions).
	InterpLinear InterpolationMode = "linear"
	// InterpBezier stores tangents for curve editing. Evaluation currently
	// falls back to linear; tangents are kept on the keyframe for a future
	// curve evaluator.
	InterpBezier InterpolationMode = "bezier"
	// InterpAuto is auto-smooth. Evaluates as linear.
	InterpAuto InterpolationMode = "auto"
)

// ValueKind discriminates the payload of a KeyframeValue.
type ValueKind string

const (
	KindFloat ValueKind = "float"
	KindVec2  ValueKind = "vec2"
	KindVec3  ValueKind = "vec3"
	KindVec4  ValueKind = "vec4"
	KindColor ValueKind = "color"
	KindBool  ValueKind = "bool"
	KindEvent ValueKind = "event"
)

// KeyframeValue is a tagged value: Kind selects which payload field is
// live. Vec4 doubles as a quaternion and interpolates spherically.
type KeyframeValue struct {
	Kind  ValueKind  `yaml:"kind"`
	Float float32    `yaml:"float,omitempty"`
	Vec2  [2]float32 `yaml:"vec2,omitempty"`
	Vec3  [3]float32 `yaml:"vec3,omitempty"`
	Vec4  [4]float32 `yaml:"vec4,omitempty"`
	Color [4]float32 `yaml:"color,omitempty"`
	Bool  bool       `yaml:"bool,omitempty"`
	Event string     `yaml:"event,omitempty"`
}

func FloatValue(v float32) KeyframeValue { return KeyframeValue{Kind: KindFloat, Float: v} }

func Vec2Value(v [2]float32) KeyframeValue { return KeyframeValue{Kind: KindVec2, Vec2: v} }

func Vec3Value(v [3]float32) KeyframeValue { return KeyframeValue{Kind: KindVec3, Vec3: v} }

// Vec4Value wraps a 4D vector or quaternion (x, y, z, w).
func Vec4Value(v [4]float32) KeyframeValue { return KeyframeValue{Kind: KindVec4, Vec4: v} }

func ColorValue(v [4]float32) KeyframeValue { return KeyframeValue{Kind: KindColor, Color: v} }

func BoolValue(v bool) KeyframeValue { return KeyframeValue{Kind: KindBool, Bool: v} }

func EventValue(name string) KeyframeValue { return KeyframeValue{Kind: KindEvent, Event: name} }

// AsFloat returns the float payload if this is a float value.
func (v KeyframeValue) AsFloat() (float32, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.Float, true
}

// AsVec3 returns the vec3 payload if this is a vec3 value.
func (v KeyframeValue) AsVec3() ([3]float32, bool) {
	if v.Kind != KindVec3 {
		return [3]float32{}, false
	}
	return v.Vec3, true
}

// AsVec4 returns the vec4/quaternion payload if this is a vec4 value.
func (v KeyframeValue) AsVec4() ([4]float32, bool) {
	if v.Kind != KindVec4 {
		return [4]float32{}, false
	}
	return v.Vec4, true
}

// Keyframe is one sample on a track. Tangents are only meaningful for
// bezier interpolation and are optional.
type Keyframe struct {
	ID            KeyframeID        `yaml:"id"`
	Time          float32           `yaml:"time"`
	Value         KeyframeValue     `yaml:"value"`
	Interpolation InterpolationMode `yaml:"interpolation"`
	InTangent     *[2]float32       `yaml:"inTangent,omitempty"`
	OutTangent    *[2]float32       `yaml:"outTangent,omitempty"`
}

// NewKeyframe returns a linear keyframe at the given time.
func NewKeyframe(time float32, value KeyframeValue) Keyframe {
	return Keyframe{
		ID:            NewKeyframeID(),
		Time:          time,
		Value:         value,
		Interpolation: InterpLinear,
	}
}

// WithInterpolation sets the interpolation mode.
func (k Keyframe) WithInterpolation(mode InterpolationMode) Keyframe {
	k.Interpolation = mode
	return k
}

// WithTangents sets bezier tangents.
func (k Keyframe) WithTangents(in, out [2]float32) Keyframe {
	k.InTangent = &in
	k.OutTangent = &out
	return k
}

// Lerp linearly interpolates between two floats.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Bezier evaluates a cubic bezier through four control values.
func Bezier(p0, p1, p2, p3, t float32) float32 {
	t2 := t * t
	t3 := t2 * t
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	return p0*mt3 + 3*p1*mt2*t + 3*p2*mt*t2 + p3*t3
}

// Hermite evaluates a cubic hermite spline with endpoint tangents.
func Hermite(p0, m0, p1, m1, t float32) float32 {
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*p0 + h10*m0 + h01*p1 + h11*m1
}

// LerpVec2 interpolates two 2D vectors component-wise.
func LerpVec2(a, b [2]float32, t float32) [2]float32 {
	return [2]float32{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

// LerpVec3 interpolates two 3D vectors component-wise.
func LerpVec3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// LerpVec4 interpolates two 4D vectors component-wise.
func LerpVec4(a, b [4]float32, t float32) [4]float32 {
	return [4]float32{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t), Lerp(a[3], b[3], t)}
}

// Slerp spherically interpolates two quaternions, taking the shorter arc.
// Near-parallel inputs fall back to normalized lerp where the slerp
// denominator becomes unstable.
func Slerp(a, b [4]float32, t float32) [4]float32 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]

	if dot < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}

	if dot > 0.9995 {
		r := LerpVec4(a, b, t)
		length := math32.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2] + r[3]*r[3])
		return [4]float32{r[0] / length, r[1] / length, r[2] / length, r[3] / length}
	}

	theta0 := math32.Acos(dot)
	theta := theta0 * t
	sinTheta := math32.Sin(theta)
	sinTheta0 := math32.Sin(theta0)

	// s0 = sin((1-t)*theta0)/sin(theta0), expanded so theta is computed once.
	s0 := math32.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return [4]float32{
		a[0]*s0 + b[0]*s1,
		a[1]*s0 + b[1]*s1,
		a[2]*s0 + b[2]*s1,
		a[3]*s0 + b[3]*s1,
	}
}

// Interpolate blends v toward other by t under the given mode. The second
// return is false when the two values have mismatched kinds and no blend
// is defined. Bool and event values hold the first operand rather than
// blending.
func (v KeyframeValue) Interpolate(other KeyframeValue, t float32, mode InterpolationMode) (KeyframeValue, bool) {
	if mode == InterpConstant {
		return v, true
	}
	// Bezier falls back to linear until a tangent-aware evaluator exists;
	// Auto evaluates as linear.
	if v.Kind != other.Kind {
		return KeyframeValue{}, false
	}
	switch v.Kind {
	case KindFloat:
		return FloatValue(Lerp(v.Float, other.Float, t)), true
	case KindVec2:
		return Vec2Value(LerpVec2(v.Vec2, other.Vec2, t)), true
	case KindVec3:
		return Vec3Value(LerpVec3(v.Vec3, other.Vec3, t)), true
	case KindVec4:
		return Vec4Value(Slerp(v.Vec4, other.Vec4, t)), true
	case KindColor:
		return ColorValue(LerpVec4(v.Color, other.Color, t)), true
	case KindBool, KindEvent:
		return v, true
	}
	return KeyframeValue{}, false
}
