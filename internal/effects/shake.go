package effects

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"

	"showroom/internal/tween"
)

// ShakeTaskID is the scheduler id of the camera shake.
const ShakeTaskID = "camera.shake"

// Shake describes one camera shake. A zero Strength means no shake.
type Shake struct {
	Strength float32
	Duration time.Duration
}

// ShakeTarget receives the shake offset; the camera rig adds it to the rendered position.
type ShakeTarget interface {
	SetShakeOffset(mgl32.Vec3)
}

// Shaker runs the camera shake as a scheduler task. The amplitude is pulled to zero by a
// critically damped spring and additionally faded by remaining progress, so it always ends
// at rest.
type Shaker struct {
	sched  *tween.Scheduler
	target ShakeTarget
	fps    int
	rnd    *rand.Rand
}

// NewShaker returns a shaker writing into target. rnd may be nil.
func NewShaker(sched *tween.Scheduler, target ShakeTarget, fps int, rnd *rand.Rand) *Shaker {
	if fps <= 0 {
		fps = 60
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Shaker{sched: sched, target: target, fps: fps, rnd: rnd}
}

// Start begins a shake, replacing any shake in progress.
func (s *Shaker) Start(sh Shake) {
	if s == nil || s.target == nil || sh.Strength <= 0 {
		return
	}
	spring := harmonica.NewSpring(harmonica.FPS(s.fps), 6.0, 1.0)
	amp, vel := float64(sh.Strength), 0.0
	s.sched.Schedule(&tween.Task{
		ID:       ShakeTaskID,
		Duration: sh.Duration,
		Step: func(p float32) {
			if p >= 1 {
				s.target.SetShakeOffset(mgl32.Vec3{})
				return
			}
			amp, vel = spring.Update(amp, vel, 0)
			f := float32(amp) * (1 - p)
			s.target.SetShakeOffset(mgl32.Vec3{
				(s.rnd.Float32() - 0.5) * f,
				(s.rnd.Float32() - 0.5) * f,
				(s.rnd.Float32() - 0.5) * f,
			})
		},
	})
}

// Stop cancels a running shake and puts the camera back at rest.
func (s *Shaker) Stop() {
	if s == nil || s.target == nil {
		return
	}
	if s.sched.Cancel(ShakeTaskID) {
		s.target.SetShakeOffset(mgl32.Vec3{})
	}
}
