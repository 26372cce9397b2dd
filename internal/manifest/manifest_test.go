package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom/internal/doors"
)

func TestDefaultBindsEveryRole(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	for _, r := range doors.Roles() {
		assert.NotEmpty(t, m.Parts[r].Node, "role %s", r)
	}
	assert.Equal(t, "M_Handel", m.Parts[doors.Handle].Node)
	assert.Equal(t, "-y", m.Parts[doors.FrontRightDoor].Axis)
	assert.Len(t, m.Paint, 14)
	require.Len(t, m.Lights, 2)
	assert.Equal(t, [3]float32{-7, 7, -20}, m.Lights[0].Position)
	assert.Equal(t, "#2c2c2c", m.Color)
}

func TestNodesAreUnique(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	nodes := m.Nodes()
	seen := map[string]bool{}
	for _, n := range nodes {
		assert.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
	assert.True(t, seen["M_Left_Front_Door"])
	assert.True(t, seen["carpaint_door_handles_r"])
	assert.Equal(t, "Body", nodes[0])
}

func TestValidateReportsProblems(t *testing.T) {
	_, err := Parse([]byte(`
parts:
  trunk: {node: Trunk, axis: x}
  frontLeftDoor: {node: Door, axis: w}
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.ErrorIs(t, err, ErrBadAxis)
	assert.ErrorIs(t, err, doors.ErrMissingPart)
}

func TestParseAxis(t *testing.T) {
	axis, sign, err := ParseAxis("-Y")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, axis)
	assert.Equal(t, float32(-1), sign)

	_, _, err = ParseAxis("")
	assert.ErrorIs(t, err, ErrBadAxis)
}

func TestLoad(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Parts)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "car.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o644))
	m, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "assets/car", m.Assets)
}
