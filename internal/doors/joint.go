package doors

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Joint is the articulation state of one scene node. It satisfies both Part and RotorPart:
// the hinge angle is applied about Axis (scaled by Sign), on top of a free rotation.
type Joint struct {
	Axis mgl32.Vec3
	// Sign mirrors the swing, so left and right doors share open angles.
	Sign float32

	angle    float32
	rotation mgl32.Quat
}

// NewJoint returns a joint at rest. A zero axis defaults to +Y; a zero sign to 1.
func NewJoint(axis mgl32.Vec3, sign float32) *Joint {
	if axis.Len() < 1e-6 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	if sign == 0 {
		sign = 1
	}
	return &Joint{Axis: axis.Normalize(), Sign: sign, rotation: mgl32.QuatIdent()}
}

// Angle returns the hinge angle in radians, before Sign is applied.
func (j *Joint) Angle() float32 { return j.angle }

// SetAngle sets the hinge angle in radians.
func (j *Joint) SetAngle(a float32) { j.angle = a }

// Rotation returns the free rotation applied on top of the hinge.
func (j *Joint) Rotation() mgl32.Quat { return j.rotation }

// SetRotation sets the free rotation.
func (j *Joint) SetRotation(q mgl32.Quat) { j.rotation = q }

// Orientation is the combined local rotation of the node.
func (j *Joint) Orientation() mgl32.Quat {
	hinge := mgl32.QuatRotate(j.Sign*j.angle, j.Axis)
	return j.rotation.Mul(hinge).Normalize()
}

// AxisAngle returns Orientation as a unit axis and an angle in degrees, the form raylib's
// DrawModelEx takes. At rest it returns +Y and 0.
func (j *Joint) AxisAngle() (mgl32.Vec3, float32) {
	return AxisAngle(j.Orientation())
}

// AxisAngle decomposes q into a unit axis and an angle in degrees.
func AxisAngle(q mgl32.Quat) (mgl32.Vec3, float32) {
	if q.W < 0 {
		q = q.Scale(-1)
	}
	w := math32.Min(1, math32.Max(-1, q.W))
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return mgl32.Vec3{0, 1, 0}, 0
	}
	return q.V.Mul(1 / s), mgl32.RadToDeg(2 * math32.Acos(w))
}
