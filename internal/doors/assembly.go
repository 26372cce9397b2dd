package doors

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMissingPart is returned when the scene did not provide a required part.
var ErrMissingPart = errors.New("missing part")

// Part is a scene node articulated about a single axis. Angles are radians.
type Part interface {
	Angle() float32
	SetAngle(float32)
}

// RotorPart is a scene node driven by a full orientation.
type RotorPart interface {
	Rotation() mgl32.Quat
	SetRotation(mgl32.Quat)
}

// Role names one member of the assembly.
type Role string

// Assembly roles. The string values are the keys used by the manifest.
const (
	// FrontLeftDoor swings open to -70 degrees.
	FrontLeftDoor Role = "frontLeftDoor"
	// FrontRightDoor mirrors the left door through its manifest axis.
	FrontRightDoor Role = "frontRightDoor"
	// BackLeftDoor swings open to -70 degrees.
	BackLeftDoor Role = "backLeftDoor"
	// BackRightDoor mirrors the back left door.
	BackRightDoor Role = "backRightDoor"
	// Spoiler lifts to -120 degrees.
	Spoiler Role = "spoiler"
	// WheelFrontLeft steers to -40 degrees.
	WheelFrontLeft Role = "wheelFrontLeft"
	// WheelFrontRight steers to -40 degrees.
	WheelFrontRight Role = "wheelFrontRight"
	// UpperWindow drops to -10 degrees.
	UpperWindow Role = "upperWindow"
	// Handle is the only RotorPart: it turns 100 degrees about ForwardAxis.
	Handle Role = "handle"
)

// Roles lists every member of the assembly in animation order.
func Roles() []Role {
	return []Role{
		FrontLeftDoor, FrontRightDoor, BackLeftDoor, BackRightDoor,
		Spoiler, WheelFrontLeft, WheelFrontRight, UpperWindow, Handle,
	}
}

// Assembly is the fixed set of parts that move under one door state.
type Assembly struct {
	FrontLeftDoor   Part
	FrontRightDoor  Part
	BackLeftDoor    Part
	BackRightDoor   Part
	Spoiler         Part
	WheelFrontLeft  Part
	WheelFrontRight Part
	UpperWindow     Part
	Handle          RotorPart
}

// NewAssembly builds an Assembly from parts keyed by role, failing fast on any missing
// role. The handle must implement RotorPart.
func NewAssembly(parts map[Role]any) (Assembly, error) {
	var a Assembly
	var missing []Role
	angle := func(r Role) Part {
		p, ok := parts[r].(Part)
		if !ok || p == nil {
			missing = append(missing, r)
			return nil
		}
		return p
	}
	a.FrontLeftDoor = angle(FrontLeftDoor)
	a.FrontRightDoor = angle(FrontRightDoor)
	a.BackLeftDoor = angle(BackLeftDoor)
	a.BackRightDoor = angle(BackRightDoor)
	a.Spoiler = angle(Spoiler)
	a.WheelFrontLeft = angle(WheelFrontLeft)
	a.WheelFrontRight = angle(WheelFrontRight)
	a.UpperWindow = angle(UpperWindow)
	if h, ok := parts[Handle].(RotorPart); ok && h != nil {
		a.Handle = h
	} else {
		missing = append(missing, Handle)
	}
	if len(missing) > 0 {
		return Assembly{}, fmt.Errorf("%w: %v", ErrMissingPart, missing)
	}
	return a, nil
}

// Part returns the angle part bound to r, or nil. The handle is not an angle part.
func (a Assembly) Part(r Role) Part {
	switch r {
	case FrontLeftDoor:
		return a.FrontLeftDoor
	case FrontRightDoor:
		return a.FrontRightDoor
	case BackLeftDoor:
		return a.BackLeftDoor
	case BackRightDoor:
		return a.BackRightDoor
	case Spoiler:
		return a.Spoiler
	case WheelFrontLeft:
		return a.WheelFrontLeft
	case WheelFrontRight:
		return a.WheelFrontRight
	case UpperWindow:
		return a.UpperWindow
	}
	return nil
}
