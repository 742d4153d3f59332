package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window describes the native window Run opens.
type Window struct {
	Width, Height int
	Title         string
	FPS           int
	Background    color.RGBA
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls
// update with the frame delta in seconds, then clears the screen and calls draw.
// ESC does not quit; the front-ends use it to cancel gestures.
func Run(w Window, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if w.FPS > 0 {
		rl.SetTargetFPS(int32(w.FPS))
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}
