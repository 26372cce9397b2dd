package state

import "fmt"

// DoorState is the single logical state of the door assembly.
type DoorState int

const (
	// Closed is the resting state at startup.
	Closed DoorState = iota
	// Opening means the opening group is animating.
	Opening
	// Open means every part reached its open target.
	Open
	// Closing means the closing group is animating.
	Closing
)

func (d DoorState) String() string {
	switch d {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("DoorState(%d)", int(d))
	}
}

// InTransition reports whether a door group is animating.
func (d DoorState) InTransition() bool {
	return d == Opening || d == Closing
}

// TargetOpen reports whether the assembly is open or heading there.
func (d DoorState) TargetOpen() bool {
	return d == Opening || d == Open
}

// ViewMode is the binary camera viewpoint.
type ViewMode int

const (
	// Front is the startup view; the doors can only be toggled here.
	Front ViewMode = iota
	// Rear looks at the back of the car.
	Rear
)

func (v ViewMode) String() string {
	if v == Rear {
		return "rear"
	}
	return "front"
}

// Flip returns the other viewpoint.
func (v ViewMode) Flip() ViewMode {
	if v == Rear {
		return Front
	}
	return Rear
}

// App is the session state shared by the door and camera controllers. Only the frame loop
// mutates it.
type App struct {
	Door DoorState
	View ViewMode
	// ForceClose is raised when the camera orbits behind the car with the doors open; the
	// next toggle closes the parts without the camera zoom and lowers it again.
	ForceClose bool
	// DoorTriggerEnabled mirrors the door button: off during a view switch and in the rear view.
	DoorTriggerEnabled bool
	// ViewInFlight is set while a view transition (or the door close that precedes it) runs.
	ViewInFlight bool
}

// New returns the startup state: doors closed, front view, door trigger enabled.
func New() *App {
	return &App{DoorTriggerEnabled: true}
}

// Validate checks the cross-controller invariant: the doors may only be open, or opening,
// in the front view.
func (a App) Validate() error {
	if a.View == Rear && a.Door.TargetOpen() {
		return fmt.Errorf("doors %s in %s view", a.Door, a.View)
	}
	return nil
}

func (a App) String() string {
	return fmt.Sprintf("door=%s view=%s forceClose=%t trigger=%t", a.Door, a.View, a.ForceClose, a.DoorTriggerEnabled)
}
