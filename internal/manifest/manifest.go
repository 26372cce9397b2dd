// Package manifest binds scene node names to articulated roles, painted surfaces and lights.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"showroom/internal/doors"
	"showroom/internal/paint"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrUnknownRole is returned for a part key that names no articulated role.
	ErrUnknownRole = errors.New("unknown part role")
	// ErrBadAxis is returned for an axis other than x, y, z or their negations.
	ErrBadAxis = errors.New("bad axis")
)

// Part binds one role to a node and the local axis it swings about.
type Part struct {
	Node string `yaml:"node"`
	// Axis is x, y or z, optionally negated to mirror the swing. Empty for the handle.
	Axis string `yaml:"axis,omitempty"`
}

// Light is a headlight position in model space.
type Light struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
}

// Manifest describes one model.
type Manifest struct {
	// Assets is the directory holding one model file per node.
	Assets string `yaml:"assets"`
	// Color is the initial paint.
	Color string `yaml:"color"`
	// Body lists static nodes that are drawn but never articulated.
	Body   []string            `yaml:"body"`
	Parts  map[doors.Role]Part `yaml:"parts"`
	Paint  []string            `yaml:"paint"`
	Lights []Light             `yaml:"lights"`
}

// Default returns the built-in manifest.
func Default() (*Manifest, error) {
	return Parse(defaultYAML)
}

// Load reads a manifest file. An empty path returns Default.
func Load(path string) (*Manifest, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Color == "" {
		m.Color = paint.DefaultColor
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every role is bound exactly once, axes parse and the colour is valid.
func (m *Manifest) Validate() error {
	var errs []error
	for role, p := range m.Parts {
		if !slices.Contains(doors.Roles(), role) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRole, role))
			continue
		}
		if p.Node == "" {
			errs = append(errs, fmt.Errorf("part %s: empty node name", role))
		}
		if role == doors.Handle {
			continue
		}
		if _, _, err := ParseAxis(p.Axis); err != nil {
			errs = append(errs, fmt.Errorf("part %s: %w", role, err))
		}
	}
	var missing []string
	for _, role := range doors.Roles() {
		if _, ok := m.Parts[role]; !ok {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", doors.ErrMissingPart, strings.Join(missing, ", ")))
	}
	if _, err := paint.Parse(m.Color); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Nodes returns every node name the manifest references, in a stable order without duplicates.
func (m *Manifest) Nodes() []string {
	var out []string
	add := func(n string) {
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	for _, n := range m.Body {
		add(n)
	}
	for _, r := range doors.Roles() {
		add(m.Parts[r].Node)
	}
	for _, n := range m.Paint {
		add(n)
	}
	return out
}

// ParseAxis turns "x", "-y" and so on into a unit axis and its sign.
func ParseAxis(s string) (mgl32.Vec3, float32, error) {
	sign := float32(1)
	a := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(a, "-") {
		sign = -1
		a = a[1:]
	}
	switch a {
	case "x":
		return mgl32.Vec3{1, 0, 0}, sign, nil
	case "y":
		return mgl32.Vec3{0, 1, 0}, sign, nil
	case "z":
		return mgl32.Vec3{0, 0, 1}, sign, nil
	}
	return mgl32.Vec3{}, 0, fmt.Errorf("%w: %q", ErrBadAxis, s)
}
