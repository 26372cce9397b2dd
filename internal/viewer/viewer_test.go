package viewer

import (
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom/internal/doors"
	"showroom/internal/effects"
	"showroom/internal/paint"
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

type fakeLight struct{ visible bool }

func (l *fakeLight) SetVisible(v bool) { l.visible = v }

type fakeCue struct{ plays, stops int }

func (c *fakeCue) Play()           { c.plays++ }
func (c *fakeCue) Stop()           { c.stops++ }
func (c *fakeCue) IsPlaying() bool { return c.plays > c.stops }

type fakeSurface struct{ m *paint.Material }

func (s *fakeSurface) AssignPaint(m *paint.Material) { s.m = m }

type countingRenderer struct{ frames int }

func (r *countingRenderer) Render() { r.frames++ }

// stepLoop runs a fixed number of frames, advancing the manual clock between them.
type stepLoop struct {
	clock  *tween.ManualClock
	frames int
	step   time.Duration
}

func (l *stepLoop) Run(update, draw func()) {
	for range l.frames {
		l.clock.Advance(l.step)
		update()
		draw()
	}
}

type fixture struct {
	v        *Viewer
	clock    *tween.ManualClock
	parts    map[doors.Role]*fakePart
	handle   *fakeRotor
	light    *fakeLight
	engine   *fakeCue
	whoosh   *fakeCue
	surface  *fakeSurface
	renderer *countingRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:    tween.NewManualClock(epoch),
		parts:    make(map[doors.Role]*fakePart),
		handle:   &fakeRotor{q: mgl32.QuatIdent()},
		light:    &fakeLight{},
		engine:   &fakeCue{},
		whoosh:   &fakeCue{},
		surface:  &fakeSurface{},
		renderer: &countingRenderer{},
	}
	f.v = New(profile.Resolve(false), Options{FPS: 60}, f.clock, zerolog.Nop())

	raw := map[doors.Role]any{doors.Handle: f.handle}
	for _, r := range doors.Roles() {
		if r == doors.Handle {
			continue
		}
		p := &fakePart{}
		f.parts[r] = p
		raw[r] = p
	}
	require.NoError(t, f.v.Bind(Binding{
		Parts:    raw,
		Paint:    paint.NewSurfaceSet(paint.MustParse(paint.DefaultColor), f.surface),
		Renderer: f.renderer,
		Lights:   []effects.Light{f.light},
		Cues:     map[string]effects.Cue{effects.CueEngine: f.engine, effects.CueWhoosh: f.whoosh},
	}))
	return f
}

func (f *fixture) frame(d time.Duration) {
	f.v.Frame(f.clock.Advance(d))
}

func (f *fixture) run(total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += 50 * time.Millisecond {
		f.frame(50 * time.Millisecond)
	}
}

func TestTriggersBeforeBind(t *testing.T) {
	v := New(profile.Resolve(false), Options{}, tween.NewManualClock(epoch), zerolog.Nop())
	assert.ErrorIs(t, v.RequestToggleDoors(), ErrNotBound)
	assert.ErrorIs(t, v.RequestSwitchView(), ErrNotBound)
	assert.ErrorIs(t, v.RequestRecolor("#ffffff"), ErrNotBound)
	assert.ErrorIs(t, v.RequestCloseNow(), ErrNotBound)
	assert.ErrorIs(t, v.RunFrameLoop(&stepLoop{}), ErrNotBound)
}

func TestBindOnceAndFailFast(t *testing.T) {
	v := New(profile.Resolve(false), Options{}, tween.NewManualClock(epoch), zerolog.Nop())
	err := v.Bind(Binding{Parts: map[doors.Role]any{}})
	require.ErrorIs(t, err, doors.ErrMissingPart)

	f := newFixture(t)
	assert.ErrorIs(t, f.v.Bind(Binding{}), ErrAlreadyBound)
	assert.Panics(t, func() { f.v.MustBind(Binding{}) })
}

func TestInitialPose(t *testing.T) {
	for _, compact := range []bool{false, true} {
		prof := profile.Resolve(compact)
		v := New(prof, Options{}, tween.NewManualClock(epoch), zerolog.Nop())
		assert.Equal(t, prof.Initial, v.ResolveInitialCameraPose(prof))
		assert.Equal(t, prof.Initial, v.Rig().Pose())
	}
}

func TestOpenThenRearScenario(t *testing.T) {
	f := newFixture(t)
	prof := f.v.Profile()

	require.NoError(t, f.v.RequestToggleDoors())
	f.frame(0)
	assert.Equal(t, state.Opening, f.v.State().Door)

	f.run(time.Second)
	assert.Equal(t, state.Open, f.v.State().Door)
	assert.Equal(t, prof.Zoom, f.v.Rig().Position())
	assert.True(t, f.light.visible)
	assert.Equal(t, 1, f.engine.plays)

	require.NoError(t, f.v.RequestSwitchView())
	f.frame(0)
	assert.True(t, f.v.CameraBusy())
	assert.Equal(t, state.Closing, f.v.State().Door)

	f.run(2 * time.Second)
	st := f.v.State()
	assert.Equal(t, state.Rear, st.View)
	assert.Equal(t, state.Closed, st.Door)
	assert.False(t, st.DoorTriggerEnabled)
	assert.False(t, f.light.visible)
	assert.Equal(t, prof.Rear, f.v.Rig().Pose())
	for r, p := range f.parts {
		assert.Equal(t, float32(0), p.angle, "part %s", r)
	}

	// Door trigger in rear view does nothing.
	require.NoError(t, f.v.RequestToggleDoors())
	f.run(time.Second)
	st = f.v.State()
	assert.Equal(t, state.Closed, st.Door)
	assert.NoError(t, st.Validate())
}

func TestOrbitBehindForcesClose(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.v.RequestToggleDoors())
	f.run(time.Second)
	require.Equal(t, state.Open, f.v.State().Door)
	whooshes := f.whoosh.plays

	f.v.Rig().Orbit(mgl32.DegToRad(180), 0)
	behind := f.v.Rig().Position()
	require.Greater(t, behind.Z(), float32(0))

	f.frame(0)
	assert.Equal(t, state.Closing, f.v.State().Door)
	f.run(time.Second)

	st := f.v.State()
	assert.Equal(t, state.Closed, st.Door)
	assert.False(t, st.ForceClose)
	assert.Equal(t, whooshes, f.whoosh.plays)
	assert.Equal(t, behind, f.v.Rig().Position(), "forced close leaves the camera where the user put it")
}

func TestOpenWhileOrbitedBehind(t *testing.T) {
	f := newFixture(t)
	f.v.Rig().Orbit(mgl32.DegToRad(180), 0)
	require.Greater(t, f.v.Rig().Position().Z(), float32(0))
	f.frame(0)

	require.NoError(t, f.v.RequestToggleDoors())
	f.frame(0)
	assert.Equal(t, state.Opening, f.v.State().Door, "the open request is not reversed")

	f.run(time.Second)
	assert.Equal(t, state.Open, f.v.State().Door)
	assert.True(t, f.light.visible)
	assert.Equal(t, f.v.Profile().Zoom, f.v.Rig().Position())
}

func TestReopenAfterForcedCloseStaysOpen(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.v.RequestToggleDoors())
	f.run(time.Second)

	f.v.Rig().Orbit(mgl32.DegToRad(180), 0)
	f.run(time.Second)
	require.Equal(t, state.Closed, f.v.State().Door)
	require.Greater(t, f.v.Rig().Position().Z(), float32(0), "still behind the car")

	require.NoError(t, f.v.RequestToggleDoors())
	f.run(time.Second)
	assert.Equal(t, state.Open, f.v.State().Door)
	assert.False(t, f.v.State().ForceClose)
}

func TestRecolor(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.v.RequestRecolor("nope"), paint.ErrInvalidColor)

	require.NoError(t, f.v.RequestRecolor("00ff00"))
	assert.Equal(t, paint.DefaultColor, f.surface.m.Hex(), "applied on the next frame")
	f.frame(0)
	assert.Equal(t, "#00ff00", f.surface.m.Hex())
}

func TestCloseNow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.v.RequestToggleDoors())
	f.run(200 * time.Millisecond)

	require.NoError(t, f.v.RequestCloseNow())
	f.frame(0)
	assert.Equal(t, state.Closed, f.v.State().Door)
	assert.Equal(t, float32(0), f.parts[doors.FrontLeftDoor].angle)

	f.run(time.Second)
	assert.False(t, f.light.visible, "lights from the cancelled opening never come on")
	assert.Equal(t, 0, f.engine.plays)
}

func TestRunFrameLoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.v.RequestToggleDoors())

	loop := &stepLoop{clock: f.clock, frames: 20, step: 50 * time.Millisecond}
	require.NoError(t, f.v.RunFrameLoop(loop))
	assert.Equal(t, 20, f.renderer.frames)
	assert.Equal(t, state.Open, f.v.State().Door)
	assert.Contains(t, f.v.Describe(), "door=open")
}

type reentrantLoop struct {
	v   *Viewer
	err error
	ran bool
}

func (l *reentrantLoop) Run(update, draw func()) {
	l.ran = true
	l.err = l.v.RunFrameLoop(&stepLoop{})
	update()
	draw()
}

func TestRunFrameLoopIsIdempotent(t *testing.T) {
	f := newFixture(t)
	loop := &reentrantLoop{v: f.v}
	require.NoError(t, f.v.RunFrameLoop(loop))
	assert.True(t, loop.ran)
	assert.NoError(t, loop.err)
	assert.Equal(t, 1, f.renderer.frames, "inner call must not run a second loop")
}

func TestTriggersFromOtherGoroutines(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.v.RequestRecolor("#123456")
		}()
	}
	wg.Wait()
	f.frame(0)
	assert.Equal(t, "#123456", f.surface.m.Hex())
}
