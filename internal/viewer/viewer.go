// Package viewer is the top-level coordinator. It owns the shared state, the scheduler and the
// controllers, and runs them from a single frame loop.
package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"showroom/internal/camera"
	"showroom/internal/doors"
	"showroom/internal/effects"
	"showroom/internal/paint"
	"showroom/internal/profile"
	"showroom/internal/state"
	"showroom/internal/tween"
)

var (
	// ErrAlreadyBound is returned by a second Bind.
	ErrAlreadyBound = errors.New("viewer already bound")
	// ErrNotBound is returned by triggers and RunFrameLoop before Bind.
	ErrNotBound = errors.New("viewer not bound")
)

// Renderer draws one frame from the current scene state.
type Renderer interface {
	Render()
}

// Loop drives frames. graphics.Window is the production loop.
type Loop interface {
	Run(update, draw func())
}

// Options tunes the coordinator.
type Options struct {
	Doors        doors.Options
	ViewDuration time.Duration
	// FPS is the expected frame rate, used to step the shake spring.
	FPS int
}

// Binding is everything the scene hands over once its assets are loaded.
type Binding struct {
	// Parts maps each articulated role to its node. Every role is required.
	Parts    map[doors.Role]any
	Paint    *paint.SurfaceSet
	Renderer Renderer
	Lights   []effects.Light
	Cues     map[string]effects.Cue
}

// Viewer coordinates doors, camera and effects for one model.
type Viewer struct {
	app     *state.App
	clock   tween.Clock
	sched   *tween.Scheduler
	timers  *effects.Timers
	fx      *effects.Coordinator
	rig     *camera.Rig
	profile profile.DeviceProfile
	opts    Options
	log     zerolog.Logger

	doors    *doors.Machine
	camera   *camera.Controller
	paint    *paint.SurfaceSet
	renderer Renderer

	mu      sync.Mutex
	bound   bool
	running bool
	queue   []func()
}

// New returns an unbound viewer with the camera at the profile's initial pose.
func New(prof profile.DeviceProfile, opts Options, clock tween.Clock, log zerolog.Logger) *Viewer {
	if clock == nil {
		clock = tween.SystemClock{}
	}
	sched := tween.NewScheduler(clock)
	timers := effects.NewTimers(clock)
	v := &Viewer{
		app:     state.New(),
		clock:   clock,
		sched:   sched,
		timers:  timers,
		fx:      effects.NewCoordinator(timers, log),
		rig:     camera.NewRig(prof.Initial),
		profile: prof,
		opts:    opts,
		log:     log.With().Str("component", "viewer").Logger(),
	}
	v.fx.SetShaker(effects.NewShaker(sched, v.rig, opts.FPS, nil))
	return v
}

// Rig returns the camera rig the renderer reads from.
func (v *Viewer) Rig() *camera.Rig {
	return v.rig
}

// Profile returns the resolved device profile.
func (v *Viewer) Profile() profile.DeviceProfile {
	return v.profile
}

// Bind attaches scene resources. It may be called once.
func (v *Viewer) Bind(b Binding) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.bound {
		return ErrAlreadyBound
	}

	asm, err := doors.NewAssembly(b.Parts)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	v.fx.SetLights(b.Lights...)
	for name, cue := range b.Cues {
		v.fx.SetCue(name, cue)
	}
	v.paint = b.Paint
	v.renderer = b.Renderer

	v.doors = doors.NewMachine(v.app, asm, v.sched, v.rig, v.profile, v.fx, v.opts.Doors, v.log)
	v.camera = camera.NewController(v.app, v.sched, v.rig, v.doors, v.profile, v.fx, v.opts.ViewDuration, v.log)
	v.bound = true

	v.log.Info().Bool("compact", v.profile.Compact).Int("lights", len(b.Lights)).Int("cues", len(b.Cues)).Msg("bound")
	return nil
}

// MustBind is Bind that panics.
func (v *Viewer) MustBind(b Binding) {
	if err := v.Bind(b); err != nil {
		panic(err)
	}
}

// SetCue installs a cue after Bind, for audio that finishes loading late.
func (v *Viewer) SetCue(name string, cue effects.Cue) {
	v.enqueue(func() { v.fx.SetCue(name, cue) })
}

// ResolveInitialCameraPose places the camera at the profile's initial pose and returns it.
func (v *Viewer) ResolveInitialCameraPose(p profile.DeviceProfile) profile.Pose {
	v.rig.SetPose(p.Initial)
	return p.Initial
}

// RunFrameLoop hands Frame to loop and blocks until it returns. A second call while running
// is a no-op.
func (v *Viewer) RunFrameLoop(loop Loop) error {
	v.mu.Lock()
	if !v.bound {
		v.mu.Unlock()
		return ErrNotBound
	}
	if v.running {
		v.mu.Unlock()
		v.log.Debug().Msg("frame loop already running")
		return nil
	}
	v.running = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.running = false
		v.mu.Unlock()
	}()

	loop.Run(func() { v.Update(v.clock.Now()) }, v.draw)
	return nil
}

// Frame runs one full frame at now: Update then Render.
func (v *Viewer) Frame(now time.Time) {
	v.Update(now)
	v.draw()
}

// Update runs the logic half of a frame: queued triggers, deferred effects, the scheduler
// tick and the auto-close check.
func (v *Viewer) Update(now time.Time) {
	for _, fn := range v.drain() {
		fn()
	}
	v.timers.Poll(now)
	v.sched.Tick(now)
	if v.doors != nil {
		v.doors.CheckAutoClose(v.rig.Position())
	}
}

func (v *Viewer) draw() {
	if v.renderer != nil {
		v.renderer.Render()
	}
}

// RequestToggleDoors opens or closes the doors on the next frame. It is ignored while the
// door trigger is disabled.
func (v *Viewer) RequestToggleDoors() error {
	return v.request(func() {
		if !v.app.DoorTriggerEnabled {
			v.log.Debug().Stringer("view", v.app.View).Msg("door trigger disabled")
			return
		}
		v.doors.Toggle()
	})
}

// RequestSwitchView flips between the front and rear viewpoints on the next frame.
func (v *Viewer) RequestSwitchView() error {
	return v.request(func() { v.camera.SwitchView() })
}

// RequestRecolor repaints the body on the next frame. The colour is parsed now.
func (v *Viewer) RequestRecolor(color string) error {
	c, err := paint.Parse(color)
	if err != nil {
		return err
	}
	return v.request(func() {
		if v.paint == nil {
			v.log.Warn().Msg("no painted surfaces bound")
			return
		}
		v.paint.Apply(c)
	})
}

// RequestCloseNow snaps the doors shut on the next frame.
func (v *Viewer) RequestCloseNow() error {
	return v.request(func() { v.doors.CloseNow() })
}

// State returns a copy of the shared state.
func (v *Viewer) State() state.App {
	return *v.app
}

// CameraBusy reports whether a view switch is running.
func (v *Viewer) CameraBusy() bool {
	return v.app.ViewInFlight
}

// Describe is the one-line state summary shown by the debug overlay.
func (v *Viewer) Describe() string {
	return v.app.String()
}

func (v *Viewer) request(fn func()) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.bound {
		return ErrNotBound
	}
	v.queue = append(v.queue, fn)
	return nil
}

func (v *Viewer) enqueue(fn func()) {
	v.mu.Lock()
	v.queue = append(v.queue, fn)
	v.mu.Unlock()
}

func (v *Viewer) drain() []func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := v.queue
	v.queue = nil
	return q
}
