package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run opens the window and drives the main loop. Each frame it calls update
// (input and one simulation step), then clears the screen and calls draw.
// This keeps the rendering layer separate from the simulation core, which
// never touches the window.
func Run(width, height int32, title string, update, draw func()) {
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
