package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"showroom/internal/profile"
)

// Window is the raylib window and its frame loop.
type Window struct {
	Width      int
	Height     int
	Title      string
	FPS        int
	Fullscreen bool
	// Background is cleared every frame before draw.
	Background rl.Color

	open bool
}

// Open creates the window. It must be called before anything loads GPU resources.
func (w *Window) Open() {
	if w.open {
		return
	}
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode | rl.FlagMsaa4xHint)
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(width, height, w.Title)
	rl.SetExitKey(rl.KeyEscape)
	fps := w.FPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))
	if w.Background == (rl.Color{}) {
		w.Background = rl.NewColor(18, 18, 22, 255)
	}
	w.open = true
}

// Close closes the window.
func (w *Window) Close() {
	if !w.open {
		return
	}
	rl.CloseWindow()
	w.open = false
}

// Run drives the frame loop until the window is closed. Each frame it calls update (input,
// animation), then clears the screen and calls draw. Open is called if needed.
func (w *Window) Run(update, draw func()) {
	w.Open()
	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}

// Compact reports whether the current screen counts as a phone-sized viewport. It needs an
// open window.
func Compact(maxWidth int) bool {
	return profile.IsCompact(rl.GetScreenWidth(), "", maxWidth)
}
