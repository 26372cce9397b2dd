package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"showroom/internal/profile"
)

// MinHeight keeps the camera above the floor.
const MinHeight = 1

// Rig holds the single authoritative camera pose. Transitions, user orbiting and the shake
// all write here; the renderer reads RenderPosition and Target every frame.
type Rig struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	shake    mgl32.Vec3
}

// NewRig returns a rig at pose.
func NewRig(pose profile.Pose) *Rig {
	r := &Rig{}
	r.SetPose(pose)
	return r
}

// Pose returns the current position and target, without shake.
func (r *Rig) Pose() profile.Pose {
	return profile.Pose{Position: r.position, Target: r.target}
}

// SetPose replaces position and target.
func (r *Rig) SetPose(p profile.Pose) {
	r.SetPosition(p.Position)
	r.SetTarget(p.Target)
}

// Position returns the camera position.
func (r *Rig) Position() mgl32.Vec3 {
	return r.position
}

// SetPosition moves the camera, clamping it above the floor.
func (r *Rig) SetPosition(p mgl32.Vec3) {
	if p[1] < MinHeight {
		p[1] = MinHeight
	}
	r.position = p
}

// Target returns the orbit target.
func (r *Rig) Target() mgl32.Vec3 {
	return r.target
}

// SetTarget moves the orbit target.
func (r *Rig) SetTarget(t mgl32.Vec3) {
	r.target = t
}

// SetShakeOffset sets the transient offset added at render time.
func (r *Rig) SetShakeOffset(o mgl32.Vec3) {
	r.shake = o
}

// ShakeOffset returns the current shake offset.
func (r *Rig) ShakeOffset() mgl32.Vec3 {
	return r.shake
}

// RenderPosition is where the camera is drawn from: position plus shake.
func (r *Rig) RenderPosition() mgl32.Vec3 {
	return r.position.Add(r.shake)
}

// Orbit rotates the camera about the target: yaw around world Y, pitch around the camera's
// right axis. Radians. Pitch is refused when it would flip the camera over the pole.
func (r *Rig) Orbit(yaw, pitch float32) {
	up := mgl32.Vec3{0, 1, 0}
	offset := r.position.Sub(r.target)
	offset = mgl32.QuatRotate(yaw, up).Rotate(offset)
	if pitch != 0 {
		right := offset.Cross(up)
		if right.Len() > 1e-6 {
			pitched := mgl32.QuatRotate(pitch, right.Normalize()).Rotate(offset)
			// Keep clear of straight up/down.
			if pitched.Normalize().Dot(up) < 0.98 && pitched.Normalize().Dot(up) > -0.98 {
				offset = pitched
			}
		}
	}
	r.SetPosition(r.target.Add(offset))
}

// Dolly moves the camera toward (negative) or away from (positive) the target, keeping the
// distance within [minDist, maxDist].
func (r *Rig) Dolly(delta, minDist, maxDist float32) {
	offset := r.position.Sub(r.target)
	dist := offset.Len()
	if dist < 1e-6 {
		return
	}
	next := mgl32.Clamp(dist+delta, minDist, maxDist)
	r.SetPosition(r.target.Add(offset.Mul(next / dist)))
}
