package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"showroom/internal/doors"
	"showroom/internal/paint"
)

var (
	unpainted   = rl.White
	placeholder = rl.NewColor(90, 90, 90, 255)
	beamColor   = rl.NewColor(255, 245, 200, 160)
	bulbColor   = rl.NewColor(255, 250, 225, 255)
)

// Node is one named model in the scene. Its articulation lives in the embedded Joint, so a
// Node can be bound directly as a door part or the handle.
type Node struct {
	*doors.Joint
	Name string

	model  rl.Model
	loaded bool
	paint  *paint.Material
}

// AssignPaint makes the node take the shared body colour.
func (n *Node) AssignPaint(m *paint.Material) {
	n.paint = m
}

func (n *Node) tint() rl.Color {
	if n.paint == nil {
		return unpainted
	}
	r, g, b, a := n.paint.RGBA()
	return rl.NewColor(r, g, b, a)
}

func (n *Node) draw() {
	if !n.loaded {
		return
	}
	axis, deg := n.AxisAngle()
	rl.DrawModelEx(n.model, rl.NewVector3(0, 0, 0), vec(axis), deg, rl.NewVector3(1, 1, 1), n.tint())
}

// Spotlight is a headlight. The beam is drawn as translucent geometry.
type Spotlight struct {
	Name     string
	Position rl.Vector3
	visible  bool
}

// SetVisible switches the light on or off.
func (l *Spotlight) SetVisible(v bool) {
	l.visible = v
}

// Visible reports whether the light is on.
func (l *Spotlight) Visible() bool {
	return l.visible
}

func (l *Spotlight) draw() {
	if !l.visible {
		rl.DrawSphere(l.Position, 0.4, placeholder)
		return
	}
	rl.DrawSphere(l.Position, 0.6, bulbColor)
	// Beam toward the front of the car, spreading to the floor.
	tip := rl.NewVector3(l.Position.X, 0.1, l.Position.Z-30)
	rl.DrawCylinderEx(l.Position, tip, 0.5, 6, 16, beamColor)
}
