package doors

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"showroom/internal/effects"
	"showroom/internal/profile"
	"showroom/internal/state"
	"showroom/internal/tween"
)

// Scheduler ids owned by the door machine.
const (
	GroupName    = "doors"
	ZoomTaskID   = "camera.position"
	taskIDPrefix = "door."
	handleTaskID = taskIDPrefix + "handle"
)

// ForwardAxis points out of the front of the car (the front camera sits at negative Z).
var ForwardAxis = mgl32.Vec3{0, 0, -1}

// Open angles per part, in degrees. Doors report their swing in the part's own frame;
// the scene mirrors the right-hand side.
var openDegrees = map[Role]float32{
	FrontLeftDoor:   -70,
	FrontRightDoor:  -70,
	BackLeftDoor:    -70,
	BackRightDoor:   -70,
	Spoiler:         -120,
	UpperWindow:     -10,
	WheelFrontLeft:  -40,
	WheelFrontRight: -40,
}

// handleOpenDegrees is the handle's rotation about ForwardAxis when open.
const handleOpenDegrees = 100

// OpenAngle returns the open angle of r in radians.
func OpenAngle(r Role) float32 {
	return mgl32.DegToRad(openDegrees[r])
}

// OpenHandle returns the handle orientation when open.
func OpenHandle() mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(handleOpenDegrees), ForwardAxis)
}

// Camera is the camera position the door machine zooms.
type Camera interface {
	Position() mgl32.Vec3
	SetPosition(mgl32.Vec3)
}

// Options tunes timings. Zero values fall back to DefaultOptions.
type Options struct {
	Duration time.Duration
	// LightDelay is how long after the doors finish opening the headlights come on.
	LightDelay time.Duration
	// EngineDelay is how long after the doors finish opening the engine cue plays.
	EngineDelay time.Duration
	Shake       effects.Shake
}

// DefaultOptions returns the stock timings.
func DefaultOptions() Options {
	return Options{
		Duration:    500 * time.Millisecond,
		LightDelay:  380 * time.Millisecond,
		EngineDelay: 350 * time.Millisecond,
		Shake:       effects.Shake{Strength: 0.3, Duration: 400 * time.Millisecond},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Duration <= 0 {
		o.Duration = d.Duration
	}
	if o.LightDelay <= 0 {
		o.LightDelay = d.LightDelay
	}
	if o.EngineDelay <= 0 {
		o.EngineDelay = d.EngineDelay
	}
	if o.Shake == (effects.Shake{}) {
		o.Shake = d.Shake
	}
	return o
}

// Result reports what a Toggle did.
type Result int

const (
	// Opened means an opening transition started.
	Opened Result = iota
	// Closed means a closing transition started.
	Closed
	// ForcedClose means the parts started closing without the camera sequence.
	ForcedClose
	// Rejected means nothing happened.
	Rejected
)

func (r Result) String() string {
	switch r {
	case Opened:
		return "opened"
	case Closed:
		return "closed"
	case ForcedClose:
		return "forced-close"
	default:
		return "rejected"
	}
}

// Machine is the door state machine. It owns the door state in the shared App and drives
// every part through the scheduler as one group.
type Machine struct {
	app     *state.App
	parts   Assembly
	sched   *tween.Scheduler
	camera  Camera
	profile profile.DeviceProfile
	fx      *effects.Coordinator
	opts    Options
	log     zerolog.Logger

	group      *tween.Group
	whenClosed []func()

	// Which side of the car the camera was on at the last CheckAutoClose. sideKnown is
	// cleared by an opening toggle so a camera already behind does not count as a crossing.
	behind    bool
	sideKnown bool
}

// NewMachine wires a door machine. camera may be nil, in which case no zoom runs.
func NewMachine(app *state.App, parts Assembly, sched *tween.Scheduler, camera Camera,
	prof profile.DeviceProfile, fx *effects.Coordinator, opts Options, log zerolog.Logger) *Machine {
	return &Machine{
		app:     app,
		parts:   parts,
		sched:   sched,
		camera:  camera,
		profile: prof,
		fx:      fx,
		opts:    opts.withDefaults(),
		log:     log.With().Str("component", "doors").Logger(),
	}
}

// State returns the current door state.
func (m *Machine) State() state.DoorState {
	return m.app.Door
}

// Toggle opens closed doors and closes open ones. A toggle while a group is animating
// supersedes it: the new group starts from wherever the parts were left.
func (m *Machine) Toggle() Result {
	if m.app.View == state.Rear {
		m.log.Warn().Stringer("view", m.app.View).Msg("cannot open doors in rear view")
		return Rejected
	}

	opening := !m.app.Door.TargetOpen()

	if m.app.ForceClose && !opening {
		m.app.ForceClose = false
		m.supersede()
		m.animate(false)
		m.log.Debug().Msg("forced close")
		return ForcedClose
	}

	m.supersede()
	if opening {
		m.sideKnown = false
	}
	m.animate(opening)
	m.zoom(opening)
	m.fx.Play(effects.CueWhoosh)
	m.fx.Fire(effects.OnInterrupt, effects.Effect{StopCue: effects.CueEngine, StopShake: true})

	if opening {
		return Opened
	}
	return Closed
}

// CheckAutoClose closes the doors when the camera crosses from in front of the car to behind
// it while the doors are open or opening. It is called every frame and reports whether it
// fired. Staying behind does not fire again; the camera has to come round the front first.
func (m *Machine) CheckAutoClose(cameraPos mgl32.Vec3) bool {
	behind := cameraPos.Z() > 0
	crossed := m.sideKnown && !m.behind && behind
	m.behind, m.sideKnown = behind, true

	if !crossed || !m.app.Door.TargetOpen() || m.app.ForceClose {
		return false
	}
	m.app.ForceClose = true
	if m.Toggle() == Rejected {
		m.app.ForceClose = false
		return false
	}
	return true
}

// CloseNow snaps every part closed without animation.
func (m *Machine) CloseNow() {
	if m.group != nil {
		m.group.Cancel()
		m.group = nil
	}
	m.fx.Invalidate()
	for _, r := range Roles() {
		if r == Handle {
			if m.parts.Handle != nil {
				m.parts.Handle.SetRotation(mgl32.QuatIdent())
			}
			continue
		}
		if p := m.parts.Part(r); p != nil {
			p.SetAngle(0)
		}
	}
	m.app.ForceClose = false
	m.settle(false)
}

// WhenClosed runs fn once, the next time the doors reach Closed. If they are closed now it
// runs immediately.
func (m *Machine) WhenClosed(fn func()) {
	if m.app.Door == state.Closed {
		fn()
		return
	}
	m.whenClosed = append(m.whenClosed, fn)
}

// supersede settles effects left by the previous toggle before a new one starts.
func (m *Machine) supersede() {
	if m.app.Door.InTransition() {
		m.fx.Interrupt()
	} else {
		m.fx.Invalidate()
	}
	if m.group != nil {
		m.group.Cancel()
	}
}

func (m *Machine) animate(opening bool) {
	if opening {
		m.app.Door = state.Opening
	} else {
		m.app.Door = state.Closing
	}

	g := m.sched.Group(GroupName, func() { m.settle(opening) })
	m.group = g
	d := m.opts.Duration

	for _, r := range Roles() {
		if r == Handle {
			continue
		}
		p := m.parts.Part(r)
		if p == nil {
			m.log.Warn().Str("part", string(r)).Msg("part not bound, skipping")
			continue
		}
		var target float32
		if opening {
			target = OpenAngle(r)
		}
		g.Add(tween.Scalar(taskIDPrefix+string(r), p.Angle(), target, d, p.SetAngle))
	}

	if h := m.parts.Handle; h != nil {
		target := mgl32.QuatIdent()
		if opening {
			target = OpenHandle()
		}
		g.Add(tween.Rotation(handleTaskID, h.Rotation(), target, d, h.SetRotation))
	} else {
		m.log.Warn().Str("part", string(Handle)).Msg("part not bound, skipping")
	}

	g.Seal()
}

func (m *Machine) zoom(opening bool) {
	if m.camera == nil {
		return
	}
	to := m.profile.Front.Position
	if opening {
		to = m.profile.Zoom
	}
	m.sched.Schedule(tween.Vector(ZoomTaskID, m.camera.Position(), to, m.opts.Duration, m.camera.SetPosition))
}

func (m *Machine) settle(opened bool) {
	m.group = nil
	if opened {
		m.app.Door = state.Open
		m.fx.Fire(effects.Delayed(m.opts.LightDelay), effects.Effect{Lights: effects.LightsOn})
		m.fx.Fire(effects.Delayed(m.opts.EngineDelay), effects.Effect{Cue: effects.CueEngine, Shake: m.opts.Shake})
		m.log.Debug().Msg("doors open")
		return
	}
	m.app.Door = state.Closed
	m.fx.Fire(effects.Immediate, effects.Effect{Lights: effects.LightsOff})
	m.log.Debug().Msg("doors closed")

	pending := m.whenClosed
	m.whenClosed = nil
	for _, fn := range pending {
		fn()
	}
}
