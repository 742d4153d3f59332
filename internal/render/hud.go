package render

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	logFontSize   = 14
	logLines      = 6
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// HUD draws the status line, the FPS and memory counters and the most recent log
// lines over a front-end.
type HUD struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowLog      bool
	// Lines supplies recent log lines, oldest first. May be nil.
	Lines func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// Draw renders status top-left in dark grey and the enabled counters top-right.
func (h *HUD) Draw(status string) {
	h.frameCount++
	update := h.frameCount%updateInterval == 0 ||
		(h.ShowFPS && h.lastFpsText == "") ||
		(h.ShowMemAlloc && h.lastMemText == "")

	if status != "" {
		rl.DrawText(status, hudPadding, hudPadding, hudFontSize, rl.DarkGray)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(hudPadding)
	drawRight := func(text string) {
		w := rl.MeasureText(text, hudFontSize)
		rl.DrawText(text, screenW-w-hudPadding, y, hudFontSize, rl.DarkGreen)
		y += hudLineHeight
	}
	if h.ShowFPS {
		if update {
			h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(h.lastFpsText)
	}
	if h.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			h.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(h.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(h.lastMemText)
	}

	if h.ShowLog && h.Lines != nil {
		lines := h.Lines()
		if len(lines) > logLines {
			lines = lines[len(lines)-logLines:]
		}
		screenH := int32(rl.GetScreenHeight())
		ly := screenH - hudPadding - int32(len(lines))*(logFontSize+2)
		for _, l := range lines {
			rl.DrawText(l, hudPadding, ly, logFontSize, rl.Gray)
			ly += logFontSize + 2
		}
	}
}
