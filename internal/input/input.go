// Package input turns keyboard and mouse state into command lines and camera orbits.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Runner executes a command line, usually commands.Registry.Run.
type Runner interface {
	Run(line string) error
}

// Orbiter is the camera the mouse drives.
type Orbiter interface {
	Orbit(yaw, pitch float32)
	Dolly(delta, minDist, maxDist float32)
}

// Presets are the paint colours on the number keys.
var Presets = []string{"#2c2c2c", "#b11f24", "#1e5aa8", "#f2f2f2", "#e0a526", "#2f6b3a"}

// Orbit tuning. Sensitivity is radians per pixel of mouse travel.
const (
	orbitSensitivity = 0.005
	dollyStep        = 4
	minDistance      = 25
	maxDistance      = 600
)

// Binding maps one key to a command line.
type Binding struct {
	Key  int32
	Line string
}

// DefaultBindings returns the stock keymap: D doors, V view, C close now, 1-6 paint presets.
func DefaultBindings() []Binding {
	b := []Binding{
		{Key: rl.KeyD, Line: "doors"},
		{Key: rl.KeyV, Line: "view"},
		{Key: rl.KeyC, Line: "close"},
	}
	for i, c := range Presets {
		b = append(b, Binding{Key: int32(rl.KeyOne + i), Line: "paint --color " + c})
	}
	return b
}

// Controls polls raylib once per frame.
type Controls struct {
	Bindings []Binding
	// Busy blocks orbiting while a scripted camera move runs.
	Busy func() bool

	runner Runner
	camera Orbiter
	log    zerolog.Logger
}

// New returns controls with DefaultBindings.
func New(runner Runner, camera Orbiter, busy func() bool, log zerolog.Logger) *Controls {
	return &Controls{
		Bindings: DefaultBindings(),
		Busy:     busy,
		runner:   runner,
		camera:   camera,
		log:      log.With().Str("component", "input").Logger(),
	}
}

// Update runs bound commands for keys pressed this frame and applies mouse orbit and zoom.
func (c *Controls) Update() {
	for _, b := range c.Bindings {
		if !rl.IsKeyPressed(b.Key) {
			continue
		}
		if err := c.runner.Run(b.Line); err != nil {
			c.log.Warn().Err(err).Str("line", b.Line).Msg("key command failed")
		}
	}

	if c.camera == nil || (c.Busy != nil && c.Busy()) {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			c.camera.Orbit(-d.X*orbitSensitivity, -d.Y*orbitSensitivity)
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.camera.Dolly(-wheel*dollyStep, minDistance, maxDistance)
	}
}
