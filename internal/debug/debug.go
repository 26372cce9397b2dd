package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the overlay text every N frames to reduce allocations.
	updateInterval = 30
	// logLines is how many recent log lines the overlay shows.
	logLines = 6
)

// Debug holds the on-screen overlays. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowState    bool

	// State returns the one-line coordinator summary drawn when ShowState is set.
	State func() string
	// Log returns recent log lines drawn under the state line.
	Log func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Draw renders any enabled overlays. Call after the scene in the draw loop.
// FPS and memory sit at the top-right in green; state and the log tail at the bottom-left.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, screenW, y)
	}

	if d.ShowState {
		d.drawState()
	}
}

func (d *Debug) drawState() {
	var lines []string
	if d.State != nil {
		lines = append(lines, d.State())
	}
	if d.Log != nil {
		tail := d.Log()
		if len(tail) > logLines {
			tail = tail[len(tail)-logLines:]
		}
		lines = append(lines, tail...)
	}
	y := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*lineHeight
	for i, line := range lines {
		c := rl.LightGray
		if i == 0 && d.State != nil {
			c = rl.Green
		}
		rl.DrawText(line, padding, y, fontSize-4, c)
		y += lineHeight
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
