package profile

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestResolveIsDeterministic(t *testing.T) {
	for _, compact := range []bool{false, true} {
		a, b := Resolve(compact), Resolve(compact)
		assert.Equal(t, a, b)
		assert.Equal(t, compact, a.Compact)
		assert.Equal(t, a.Front, a.Initial)
	}
}

func TestResolveStandard(t *testing.T) {
	p := Resolve(false)
	assert.Equal(t, mgl32.Vec3{-33.41, 13.46, -107.95}, p.Front.Position)
	assert.Equal(t, mgl32.Vec3{0, 6, 0}, p.Front.Target)
	assert.Equal(t, mgl32.Vec3{29.49, 10.45, 98.363}, p.Rear.Position)
	assert.Equal(t, mgl32.Vec3{-2, 6, 0}, p.Rear.Target)
	assert.Equal(t, mgl32.Vec3{-30, 17.28, -130}, p.Zoom)
}

func TestResolveCompact(t *testing.T) {
	p := Resolve(true)
	assert.Equal(t, mgl32.Vec3{-120, 20, -500}, p.Front.Position)
	assert.Equal(t, mgl32.Vec3{45, 12, 200}, p.Rear.Position)
	assert.Equal(t, mgl32.Vec3{-44.81, 17.28, -350}, p.Zoom)
}

func TestIsCompact(t *testing.T) {
	tests := []struct {
		name  string
		width int
		agent string
		want  bool
	}{
		{"desktop", 1920, "Mozilla/5.0 (X11; Linux x86_64)", false},
		{"narrow window", 700, "", true},
		{"boundary", 768, "", true},
		{"android tablet", 1280, "Mozilla/5.0 (Linux; Android 14)", true},
		{"iphone", 1170, "Mozilla/5.0 (iPhone) Mobile/15E148", true},
		{"unknown width", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompact(tt.width, tt.agent, 0))
		})
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Resolve(false))
	want := "Compact:    false\n" +
		"Initial:    (-33.41, 13.46, -107.95) -> (0.00, 6.00, 0.00)\n" +
		"Front:      (-33.41, 13.46, -107.95) -> (0.00, 6.00, 0.00)\n" +
		"Rear:       (29.49, 10.45, 98.36) -> (-2.00, 6.00, 0.00)\n" +
		"Zoom:       (-30.00, 17.28, -130.00)\n"
	assert.Equal(t, want, buf.String())
}
