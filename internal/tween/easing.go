package tween

import "github.com/chewxy/math32"

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing int

const (
	// Linear is plain interpolation; every viewer transition uses it unless told otherwise.
	Linear Easing = iota
	// EaseInOut is smoothstep: slow start, slow finish.
	EaseInOut
	// EaseOut is cubic deceleration.
	EaseOut
)

// Apply returns the eased progress for p. p is clamped to [0,1] first.
func (e Easing) Apply(p float32) float32 {
	p = clamp01(p)
	switch e {
	case EaseInOut:
		return p * p * (3 - 2*p)
	case EaseOut:
		return 1 - math32.Pow(1-p, 3)
	default:
		return p
	}
}

func (e Easing) String() string {
	switch e {
	case EaseInOut:
		return "ease-in-out"
	case EaseOut:
		return "ease-out"
	default:
		return "linear"
	}
}

func clamp01(p float32) float32 {
	if math32.IsNaN(p) {
		return 0
	}
	return math32.Max(0, math32.Min(1, p))
}
