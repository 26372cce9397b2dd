package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct{ m *Material }

func (f *fakeSurface) AssignPaint(m *Material) { f.m = m }

func TestSurfacesShareOneMaterial(t *testing.T) {
	a, b := &fakeSurface{}, &fakeSurface{}
	set := NewSurfaceSet(MustParse(DefaultColor), a, nil, b)

	assert.Equal(t, 2, set.Len())
	require.NotNil(t, a.m)
	assert.Same(t, a.m, b.m)

	require.NoError(t, set.Recolor("#1e90ff"))
	assert.Equal(t, "#1e90ff", a.m.Hex())
	assert.Equal(t, "#1e90ff", b.m.Hex())

	r, g, bl, al := b.m.RGBA()
	assert.Equal(t, [4]uint8{0x1e, 0x90, 0xff, 255}, [4]uint8{r, g, bl, al})
}

func TestRecolorRejectsMalformed(t *testing.T) {
	set := NewSurfaceSet(MustParse(DefaultColor), &fakeSurface{})
	for _, v := range []string{"", "#12", "blue", "#gggggg", "#1234567"} {
		err := set.Recolor(v)
		assert.ErrorIs(t, err, ErrInvalidColor, "value %q", v)
	}
	assert.Equal(t, DefaultColor, set.Material().Hex(), "paint untouched after bad input")
}

func TestParseAcceptsShortAndBareForms(t *testing.T) {
	for _, v := range []string{"ffffff", "#fff", "fff", " #FFFFFF "} {
		c, err := Parse(v)
		require.NoError(t, err, v)
		assert.Equal(t, "#ffffff", c.Hex(), v)
	}
}
