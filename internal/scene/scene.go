package scene

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"showroom/internal/assets"
	"showroom/internal/camera"
	"showroom/internal/doors"
	"showroom/internal/effects"
	"showroom/internal/manifest"
	"showroom/internal/paint"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	fovy           = 45
)

// skyboxPaths are tried in order so the skybox is found whether run from repo root or cmd/viewer.
var skyboxPaths = []string{
	"assets/skybox/showroom.png",
	"assets/skybox/showroom.jpg",
	"../../assets/skybox/showroom.png",
	"../../assets/skybox/showroom.jpg",
}

// Scene holds the car's nodes, its headlights and the environment, and draws them from the
// camera rig.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	rig    *camera.Rig
	nodes  map[string]*Node
	order  []*Node
	lights []*Spotlight
	sky    *skybox
	log    zerolog.Logger
}

// Load builds the scene from m. It must run after the window exists. Nodes whose model file
// is missing are still created, so the door machine can bind them, but are not drawn.
func Load(m *manifest.Manifest, rig *camera.Rig, log zerolog.Logger) (*Scene, error) {
	s := &Scene{
		GridVisible: true,
		rig:         rig,
		nodes:       make(map[string]*Node),
		log:         log.With().Str("component", "scene").Logger(),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fovy
	s.Camera.Projection = rl.CameraPerspective
	s.syncCamera()

	axes := map[string]*doors.Joint{}
	for role, p := range m.Parts {
		if role == doors.Handle {
			axes[p.Node] = doors.NewJoint(doors.ForwardAxis, 1)
			continue
		}
		axis, sign, err := manifest.ParseAxis(p.Axis)
		if err != nil {
			return nil, err
		}
		axes[p.Node] = doors.NewJoint(axis, sign)
	}

	missing := 0
	for _, name := range m.Nodes() {
		j, ok := axes[name]
		if !ok {
			j = doors.NewJoint(mgl32.Vec3{0, 1, 0}, 1)
		}
		n := &Node{Name: name, Joint: j}
		if path := assets.ModelPath(m.Assets, name); path != "" {
			n.model = rl.LoadModel(path)
			n.loaded = rl.IsModelValid(n.model)
		}
		if !n.loaded {
			missing++
			s.log.Debug().Str("node", name).Str("assets", m.Assets).Msg("no model for node")
		}
		s.nodes[name] = n
		s.order = append(s.order, n)
	}
	if missing == len(s.order) && len(s.order) > 0 {
		s.log.Warn().Str("assets", m.Assets).Msg("no node models found, only the floor and lights will draw")
	}

	for _, l := range m.Lights {
		s.lights = append(s.lights, &Spotlight{Name: l.Name, Position: rl.NewVector3(l.Position[0], l.Position[1], l.Position[2])})
	}

	s.sky = findSkybox(skyboxPaths)
	return s, nil
}

// Node looks a node up by name.
func (s *Scene) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Assembly maps every role in m to its node, ready for viewer.Binding.
func (s *Scene) Assembly(m *manifest.Manifest) (map[doors.Role]any, error) {
	out := make(map[doors.Role]any, len(m.Parts))
	var errs []error
	for role, p := range m.Parts {
		n, ok := s.nodes[p.Node]
		if !ok {
			errs = append(errs, errors.New("node "+p.Node+" not in scene"))
			continue
		}
		out[role] = n
	}
	return out, errors.Join(errs...)
}

// PaintTargets returns the nodes that take the shared body paint.
func (s *Scene) PaintTargets(m *manifest.Manifest) []paint.Surface {
	var out []paint.Surface
	for _, name := range m.Paint {
		if n, ok := s.nodes[name]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Lights returns the headlights as effect targets.
func (s *Scene) Lights() []effects.Light {
	out := make([]effects.Light, len(s.lights))
	for i, l := range s.lights {
		out[i] = l
	}
	return out
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Render draws the 3D scene from the rig's current pose. Call between BeginDrawing and
// EndDrawing, before any 2D overlay.
func (s *Scene) Render() {
	s.syncCamera()
	rl.BeginMode3D(s.Camera)
	s.sky.draw(s.Camera.Position)
	if s.GridVisible {
		drawFloorGrid()
	}
	for _, n := range s.order {
		n.draw()
	}
	for _, l := range s.lights {
		l.draw()
	}
	rl.EndMode3D()
}

// Unload releases GPU resources.
func (s *Scene) Unload() {
	for _, n := range s.order {
		if n.loaded {
			rl.UnloadModel(n.model)
			n.loaded = false
		}
	}
	s.sky.unload()
}

func (s *Scene) syncCamera() {
	if s.rig == nil {
		return
	}
	s.Camera.Position = vec(s.rig.RenderPosition())
	s.Camera.Target = vec(s.rig.Target())
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// drawFloorGrid draws a grid on the XZ plane with major and minor lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawFloorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}
