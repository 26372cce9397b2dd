// Package paint holds the shared body colour of the model.
package paint

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for values that are not #rrggbb or #rgb.
var ErrInvalidColor = errors.New("invalid colour")

// DefaultColor is the factory paint.
const DefaultColor = "#2c2c2c"

// Material is the one paint shared by every painted surface. Recolouring it recolours all of
// them at once.
type Material struct {
	mu    sync.RWMutex
	color colorful.Color
}

// NewMaterial returns a material painted c.
func NewMaterial(c colorful.Color) *Material {
	return &Material{color: c}
}

// Color returns the current colour.
func (m *Material) Color() colorful.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

// Hex returns the current colour as #rrggbb.
func (m *Material) Hex() string {
	return m.Color().Hex()
}

// RGBA returns the colour as 8-bit channels, fully opaque.
func (m *Material) RGBA() (r, g, b, a uint8) {
	r, g, b = m.Color().Clamped().RGB255()
	return r, g, b, 255
}

func (m *Material) set(c colorful.Color) {
	m.mu.Lock()
	m.color = c
	m.mu.Unlock()
}

// Surface is a scene node that takes the shared paint.
type Surface interface {
	AssignPaint(*Material)
}

// SurfaceSet is the collection of nodes painted with one Material.
type SurfaceSet struct {
	material *Material
	surfaces []Surface
}

// NewSurfaceSet assigns a single material painted initial to every surface. Nil surfaces are
// skipped.
func NewSurfaceSet(initial colorful.Color, surfaces ...Surface) *SurfaceSet {
	s := &SurfaceSet{material: NewMaterial(initial)}
	for _, n := range surfaces {
		if n == nil {
			continue
		}
		n.AssignPaint(s.material)
		s.surfaces = append(s.surfaces, n)
	}
	return s
}

// Material returns the shared material.
func (s *SurfaceSet) Material() *Material {
	return s.material
}

// Len returns the number of painted surfaces.
func (s *SurfaceSet) Len() int {
	return len(s.surfaces)
}

// Apply sets the shared colour.
func (s *SurfaceSet) Apply(c colorful.Color) {
	s.material.set(c)
}

// Recolor parses value and applies it. An invalid value leaves the paint untouched.
func (s *SurfaceSet) Recolor(value string) error {
	c, err := Parse(value)
	if err != nil {
		return err
	}
	s.Apply(c)
	return nil
}

// Parse accepts #rrggbb, rrggbb, #rgb or rgb.
func Parse(value string) (colorful.Color, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if len(v) != 4 && len(v) != 7 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return c, nil
}

// MustParse is Parse for constants.
func MustParse(value string) colorful.Color {
	c, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return c
}
