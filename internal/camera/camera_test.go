package camera

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom/internal/doors"
	"showroom/internal/effects"
	"showroom/internal/profile"
	"showroom/internal/state"
	"showroom/internal/tween"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakePart struct{ angle float32 }

func (p *fakePart) Angle() float32     { return p.angle }
func (p *fakePart) SetAngle(a float32) { p.angle = a }

type fakeRotor struct{ q mgl32.Quat }

func (r *fakeRotor) Rotation() mgl32.Quat     { return r.q }
func (r *fakeRotor) SetRotation(q mgl32.Quat) { r.q = q }

type fakeCue struct{ plays int }

func (c *fakeCue) Play()           { c.plays++ }
func (c *fakeCue) Stop()           {}
func (c *fakeCue) IsPlaying() bool { return false }

type harness struct {
	app    *state.App
	clock  *tween.ManualClock
	sched  *tween.Scheduler
	timers *effects.Timers
	rig    *Rig
	prof   profile.DeviceProfile
	doors  *doors.Machine
	cam    *Controller
	whoosh *fakeCue
	left   *fakePart
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		app:    state.New(),
		clock:  tween.NewManualClock(epoch),
		prof:   profile.Resolve(false),
		whoosh: &fakeCue{},
	}
	h.sched = tween.NewScheduler(h.clock)
	h.timers = effects.NewTimers(h.clock)
	fx := effects.NewCoordinator(h.timers, zerolog.Nop())
	fx.SetCue(effects.CueWhoosh, h.whoosh)
	h.rig = NewRig(h.prof.Initial)

	raw := map[doors.Role]any{doors.Handle: &fakeRotor{q: mgl32.QuatIdent()}}
	for _, r := range doors.Roles() {
		if r != doors.Handle {
			raw[r] = &fakePart{}
		}
	}
	h.left = raw[doors.FrontLeftDoor].(*fakePart)
	asm, err := doors.NewAssembly(raw)
	require.NoError(t, err)

	h.doors = doors.NewMachine(h.app, asm, h.sched, h.rig, h.prof, fx, doors.DefaultOptions(), zerolog.Nop())
	h.cam = NewController(h.app, h.sched, h.rig, h.doors, h.prof, fx, 0, zerolog.Nop())
	return h
}

func (h *harness) frame(d time.Duration) {
	now := h.clock.Advance(d)
	h.timers.Poll(now)
	h.sched.Tick(now)
}

func (h *harness) settle() {
	for range 10 {
		h.frame(100 * time.Millisecond)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-4)

func TestSwitchToRearAndBack(t *testing.T) {
	h := newHarness(t)

	h.cam.SwitchView()
	assert.True(t, h.cam.Busy())
	assert.False(t, h.app.DoorTriggerEnabled, "door button disabled during the switch")
	assert.Equal(t, 1, h.whoosh.plays, "whoosh plays when the move starts")

	h.frame(250 * time.Millisecond)
	assert.Equal(t, state.Front, h.cam.View(), "view flips on completion only")
	mid := tween.LerpVec3(h.prof.Front.Position, h.prof.Rear.Position, 0.5)
	if diff := cmp.Diff(mid, h.rig.Position(), approx); diff != "" {
		t.Errorf("midway position (-want +got):\n%s", diff)
	}

	h.frame(250 * time.Millisecond)
	assert.Equal(t, state.Rear, h.cam.View())
	assert.Equal(t, h.prof.Rear, h.rig.Pose())
	assert.False(t, h.app.DoorTriggerEnabled, "door button stays disabled in rear view")
	assert.False(t, h.cam.Busy())

	h.cam.SwitchView()
	h.settle()
	assert.Equal(t, state.Front, h.cam.View())
	assert.Equal(t, h.prof.Front, h.rig.Pose())
	assert.True(t, h.app.DoorTriggerEnabled)
}

func TestSwitchClosesOpenDoorsFirst(t *testing.T) {
	h := newHarness(t)
	h.doors.Toggle()
	h.settle()
	require.Equal(t, state.Open, h.app.Door)

	h.cam.SwitchView()
	assert.Equal(t, state.Closing, h.app.Door)
	assert.False(t, h.sched.Active(TargetTaskID), "camera waits for the doors")

	cameraStartedWithDoorsClosed := false
	for range 20 {
		h.frame(50 * time.Millisecond)
		if h.sched.Active(TargetTaskID) && !cameraStartedWithDoorsClosed {
			cameraStartedWithDoorsClosed = h.app.Door == state.Closed
		}
	}
	assert.True(t, cameraStartedWithDoorsClosed)
	assert.Equal(t, state.Rear, h.cam.View())
	assert.Equal(t, state.Closed, h.app.Door)
	assert.Equal(t, float32(0), h.left.angle)
	assert.Equal(t, h.prof.Rear, h.rig.Pose())
	assert.NoError(t, h.app.Validate())
}

func TestRepeatedSwitchSupersedes(t *testing.T) {
	h := newHarness(t)
	h.cam.SwitchView()
	h.frame(300 * time.Millisecond)
	left := h.rig.Position()

	h.cam.SwitchView()
	assert.Equal(t, 2, h.sched.Len(), "position and target only, never stacked")
	h.frame(0)
	if diff := cmp.Diff(left, h.rig.Position(), approx); diff != "" {
		t.Errorf("restart should begin at the last rendered pose (-want +got):\n%s", diff)
	}

	h.settle()
	assert.Equal(t, state.Rear, h.cam.View(), "flipped exactly once")
	assert.Equal(t, h.prof.Rear, h.rig.Pose())
}

func TestDoorsRejectedInRearView(t *testing.T) {
	h := newHarness(t)
	h.cam.SwitchView()
	h.settle()

	assert.Equal(t, doors.Rejected, h.doors.Toggle())
	assert.Equal(t, state.Closed, h.app.Door)
}

func TestRigClampsAndShakes(t *testing.T) {
	r := NewRig(profile.Pose{Position: mgl32.Vec3{0, 5, -10}})
	r.SetPosition(mgl32.Vec3{0, -3, -10})
	assert.Equal(t, float32(MinHeight), r.Position().Y())

	r.SetShakeOffset(mgl32.Vec3{0.1, 0, 0})
	assert.Equal(t, mgl32.Vec3{0.1, MinHeight, -10}, r.RenderPosition())
	assert.Equal(t, mgl32.Vec3{0, MinHeight, -10}, r.Pose().Position)
}

func TestOrbitKeepsDistanceAndCrossesRear(t *testing.T) {
	r := NewRig(profile.Resolve(false).Front)
	dist := r.Position().Sub(r.Target()).Len()

	r.Orbit(mgl32.DegToRad(180), 0)
	assert.InDelta(t, dist, r.Position().Sub(r.Target()).Len(), 1e-3)
	assert.Greater(t, r.Position().Z(), float32(0), "half a turn puts the camera behind the car")

	r.Dolly(-1000, 40, 200)
	assert.InDelta(t, 40, r.Position().Sub(r.Target()).Len(), 1e-3)
}
