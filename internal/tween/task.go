package tween

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Task is one time-bounded interpolation owned by a Scheduler from Schedule until it
// completes or is cancelled.
//
// Step receives eased progress. On the final tick Step is called with exactly 1, so
// value tasks can write their destination without interpolation error.
type Task struct {
	ID         string
	Duration   time.Duration
	Easing     Easing
	Step       func(p float32)
	OnComplete func()

	start time.Time
}

// Start returns the time the scheduler stamped on the task.
func (t *Task) Start() time.Time {
	return t.start
}

// progress returns raw (uneased) progress at now, clamped to [0,1].
// Non-positive durations complete on their first tick.
func (t *Task) progress(now time.Time) float32 {
	if t.Duration <= 0 {
		return 1
	}
	return clamp01(float32(float64(now.Sub(t.start)) / float64(t.Duration)))
}

// Scalar interpolates an angle (or any float) from -> to, writing through set.
func Scalar(id string, from, to float32, d time.Duration, set func(float32)) *Task {
	return &Task{
		ID:       id,
		Duration: d,
		Step: func(p float32) {
			if p >= 1 {
				set(to)
				return
			}
			set(from + (to-from)*p)
		},
	}
}

// Vector interpolates a position linearly.
func Vector(id string, from, to mgl32.Vec3, d time.Duration, set func(mgl32.Vec3)) *Task {
	return &Task{
		ID:       id,
		Duration: d,
		Step: func(p float32) {
			if p >= 1 {
				set(to)
				return
			}
			set(LerpVec3(from, to, p))
		},
	}
}

// Rotation interpolates an orientation along the shortest arc.
func Rotation(id string, from, to mgl32.Quat, d time.Duration, set func(mgl32.Quat)) *Task {
	return &Task{
		ID:       id,
		Duration: d,
		Step: func(p float32) {
			if p >= 1 {
				set(to)
				return
			}
			set(Slerp(from, to, p))
		},
	}
}

// LerpVec3 returns a + (b-a)*p.
func LerpVec3(a, b mgl32.Vec3, p float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(p))
}

// Slerp spherically interpolates a -> b. q and -q are the same orientation, so the
// destination is flipped when needed to keep the path under 180 degrees.
func Slerp(a, b mgl32.Quat, p float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, p)
}
