package camera

import (
	"time"

	"github.com/rs/zerolog"

	"showroom/internal/doors"
	"showroom/internal/effects"
	"showroom/internal/profile"
	"showroom/internal/state"
	"showroom/internal/tween"
)

// Scheduler ids owned by the view controller. The position id is shared with the door zoom,
// so a view switch supersedes any zoom in flight.
const (
	PositionTaskID = doors.ZoomTaskID
	TargetTaskID   = "camera.target"
	groupName      = "camera.view"
)

// DefaultDuration is the stock length of a view switch.
const DefaultDuration = 500 * time.Millisecond

// Doors is the part of the door machine the view controller needs.
type Doors interface {
	Toggle() doors.Result
	WhenClosed(func())
}

// Controller owns the front/rear viewpoint.
type Controller struct {
	app      *state.App
	sched    *tween.Scheduler
	rig      *Rig
	doors    Doors
	profile  profile.DeviceProfile
	fx       *effects.Coordinator
	duration time.Duration
	log      zerolog.Logger

	waiting bool
}

// NewController wires a view controller. A non-positive duration uses DefaultDuration.
func NewController(app *state.App, sched *tween.Scheduler, rig *Rig, d Doors,
	prof profile.DeviceProfile, fx *effects.Coordinator, duration time.Duration, log zerolog.Logger) *Controller {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Controller{
		app:      app,
		sched:    sched,
		rig:      rig,
		doors:    d,
		profile:  prof,
		fx:       fx,
		duration: duration,
		log:      log.With().Str("component", "camera").Logger(),
	}
}

// Reset places the camera at the profile's initial pose.
func (c *Controller) Reset(p profile.DeviceProfile) {
	c.rig.SetPose(p.Initial)
}

// View returns the committed viewpoint.
func (c *Controller) View() state.ViewMode {
	return c.app.View
}

// Busy reports whether a view switch is running or waiting for the doors.
func (c *Controller) Busy() bool {
	return c.app.ViewInFlight
}

// SwitchView flips between front and rear. Open doors are closed first and the camera moves
// once they report Closed. A second request mid-switch restarts from the current pose.
func (c *Controller) SwitchView() {
	if c.waiting {
		c.log.Debug().Msg("view switch already waiting for doors")
		return
	}

	c.app.DoorTriggerEnabled = false
	c.app.ViewInFlight = true

	if c.app.Door.TargetOpen() {
		c.log.Debug().Stringer("door", c.app.Door).Msg("closing doors before view switch")
		c.doors.Toggle()
	}
	if c.app.Door != state.Closed {
		c.waiting = true
		c.doors.WhenClosed(func() {
			c.waiting = false
			c.start()
		})
		return
	}
	c.start()
}

func (c *Controller) start() {
	from := c.rig.Pose()
	to := c.profile.Rear
	if c.app.View == state.Rear {
		to = c.profile.Front
	}

	c.fx.Play(effects.CueWhoosh)

	g := c.sched.Group(groupName, c.finish)
	g.Add(tween.Vector(PositionTaskID, from.Position, to.Position, c.duration, c.rig.SetPosition))
	g.Add(tween.Vector(TargetTaskID, from.Target, to.Target, c.duration, c.rig.SetTarget))
	g.Seal()

	c.log.Debug().Stringer("from", c.app.View).Stringer("to", c.app.View.Flip()).Msg("view switch")
}

func (c *Controller) finish() {
	c.app.View = c.app.View.Flip()
	c.app.ViewInFlight = false
	c.app.DoorTriggerEnabled = c.app.View == state.Front
}
