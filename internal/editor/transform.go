package editor

import (
	"github.com/chewxy/math32"

	"scene-editor/internal/scene"
)

// TransformData is the wire form of a transform used in snapshots:
// rotation travels as a quaternion (x, y, z, w) so interpolating gizmos
// and replayed snapshots agree on orientation regardless of euler
// convention.
type TransformData struct {
	Position [3]float32
	Rotation [4]float32
	Scale    [3]float32
}

// DefaultTransformData is identity: origin, no rotation, unit scale.
func DefaultTransformData() TransformData {
	return TransformData{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// FromTransform converts a scene transform (euler degrees) to wire form.
func FromTransform(t scene.Transform) TransformData {
	return TransformData{
		Position: t.Position,
		Rotation: EulerToQuaternion(t.Rotation),
		Scale:    t.Scale,
	}
}

// ToTransform converts back to a scene transform with euler degrees.
func (d TransformData) ToTransform() scene.Transform {
	return scene.Transform{
		Position: d.Position,
		Rotation: QuaternionToEuler(d.Rotation),
		Scale:    d.Scale,
	}
}

const degToRad = math32.Pi / 180

// EulerToQuaternion converts XYZ euler angles in degrees to a quaternion
// (x, y, z, w).
func EulerToQuaternion(euler [3]float32) [4]float32 {
	halfX := euler[0] * degToRad * 0.5
	halfY := euler[1] * degToRad * 0.5
	halfZ := euler[2] * degToRad * 0.5

	sx, cx := math32.Sincos(halfX)
	sy, cy := math32.Sincos(halfY)
	sz, cz := math32.Sincos(halfZ)

	return [4]float32{
		sx*cy*cz - cx*sy*sz,
		cx*sy*cz + sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
		cx*cy*cz + sx*sy*sz,
	}
}

// QuaternionToEuler converts a quaternion (x, y, z, w) to XYZ euler
// angles in degrees. Pitch clamps to ±90° at the gimbal singularity.
func QuaternionToEuler(q [4]float32) [3]float32 {
	x, y, z, w := q[0], q[1], q[2], q[3]

	sinrCosp := 2 * (w*x + y*z)
	cosrCosp := 1 - 2*(x*x+y*y)
	roll := math32.Atan2(sinrCosp, cosrCosp)

	sinp := 2 * (w*y - z*x)
	var pitch float32
	if math32.Abs(sinp) >= 1 {
		pitch = math32.Copysign(math32.Pi/2, sinp)
	} else {
		pitch = math32.Asin(sinp)
	}

	sinyCosp := 2 * (w*z + x*y)
	cosyCosp := 1 - 2*(y*y+z*z)
	yaw := math32.Atan2(sinyCosp, cosyCosp)

	return [3]float32{roll / degToRad, pitch / degToRad, yaw / degToRad}
}
