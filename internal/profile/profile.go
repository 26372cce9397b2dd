package profile

import (
	"fmt"
	"io"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCompactMaxWidth is the widest viewport still treated as a phone.
const DefaultCompactMaxWidth = 768

var mobileAgent = regexp.MustCompile(`Mobi|Android`)

// Pose is a camera position and the orbit target it looks at.
type Pose struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// DeviceProfile is the set of camera poses for one form factor. It is resolved once at
// startup and passed around by value; nothing mutates it afterwards.
type DeviceProfile struct {
	Compact bool
	// Initial is where the camera starts; it equals Front.
	Initial Pose
	Front   Pose
	Rear    Pose
	// Zoom is the camera position used while the doors are open. The target is unchanged.
	Zoom mgl32.Vec3
}

// Resolve returns the profile for the given form factor. Same input, same output.
func Resolve(compact bool) DeviceProfile {
	if compact {
		front := Pose{
			Position: mgl32.Vec3{-120, 20, -500},
			Target:   mgl32.Vec3{0, 2, 0},
		}
		return DeviceProfile{
			Compact: true,
			Initial: front,
			Front:   front,
			Rear: Pose{
				Position: mgl32.Vec3{45, 12, 200},
				Target:   mgl32.Vec3{0, 2, 0},
			},
			Zoom: mgl32.Vec3{-44.81, 17.28, -350},
		}
	}
	front := Pose{
		Position: mgl32.Vec3{-33.41, 13.46, -107.95},
		Target:   mgl32.Vec3{0, 6, 0},
	}
	return DeviceProfile{
		Initial: front,
		Front:   front,
		Rear: Pose{
			Position: mgl32.Vec3{29.49, 10.45, 98.363},
			// Slight pan right for the rear view.
			Target: mgl32.Vec3{-2, 6, 0},
		},
		Zoom: mgl32.Vec3{-30, 17.28, -130},
	}
}

// IsCompact derives the form-factor signal from viewport width and user agent.
// A maxWidth of zero or less uses DefaultCompactMaxWidth.
func IsCompact(width int, userAgent string, maxWidth int) bool {
	if maxWidth <= 0 {
		maxWidth = DefaultCompactMaxWidth
	}
	return (width > 0 && width <= maxWidth) || mobileAgent.MatchString(userAgent)
}

// Print writes p as an aligned table, one pose per line.
func Print(w io.Writer, p DeviceProfile) {
	fmt.Fprintf(w, "%-11s %t\n", "Compact:", p.Compact)
	for _, row := range []struct {
		name string
		pose Pose
	}{{"Initial", p.Initial}, {"Front", p.Front}, {"Rear", p.Rear}} {
		fmt.Fprintf(w, "%-11s %s -> %s\n", row.name+":", vec(row.pose.Position), vec(row.pose.Target))
	}
	fmt.Fprintf(w, "%-11s %s\n", "Zoom:", vec(p.Zoom))
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
