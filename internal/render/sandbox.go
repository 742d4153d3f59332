package render

import (
	"errors"
	"fmt"
	"log/slog"

	"toybox/internal/commands"
	"toybox/internal/metrics"
	"toybox/internal/palette"
	"toybox/internal/preset"
	"toybox/internal/scene"
	"toybox/internal/tool"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// previewTint lightens the drag preview so it reads as not yet placed.
const previewTint = 0.5

// hotkeys map single keys to sandbox commands.
var hotkeys = []struct {
	key  int32
	line string
}{
	{rl.KeySpace, "toggle"},
	{rl.KeyC, "clear"},
	{rl.KeyS, "save"},
	{rl.KeyL, "load"},
}

// Sandbox is the interactive front-end of the collision sandbox.
type Sandbox struct {
	Scene    *scene.Scene
	Tool     *tool.Controller
	Commands *commands.Registry
	// Metrics, when set, observes every tick.
	Metrics *metrics.Metrics
	// Presets delivers reloaded presets from a watcher. May be nil.
	Presets <-chan *preset.Preset
	HUD     *HUD
	// Console, when set, takes the keyboard while open.
	Console *Console
	Log     *slog.Logger

	previewColor string
}

// NewSandbox wires a front-end over an existing scene, tool controller and command registry.
func NewSandbox(s *scene.Scene, ctl *tool.Controller, reg *commands.Registry, hud *HUD, log *slog.Logger) *Sandbox {
	preview := ""
	if ctl.Palette != nil {
		if cols := ctl.Palette.Colors(); len(cols) > 0 {
			preview = cols[0]
		}
	}
	return &Sandbox{Scene: s, Tool: ctl, Commands: reg, HUD: hud, Log: log, previewColor: preview}
}

// Update applies pending presets, handles input and advances the scene by one frame.
func (v *Sandbox) Update(dt float32) {
	v.drainPresets()
	if rl.IsWindowResized() {
		v.resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}
	if v.Console != nil {
		v.Console.Update()
	}
	if v.Console == nil || !v.Console.IsOpen() {
		v.handleKeys()
	}
	v.handleMouse()

	stats := v.Scene.Tick(float64(dt))
	if v.Metrics != nil {
		bodies, obstacles := v.Scene.Len()
		v.Metrics.Observe(stats, bodies, obstacles)
	}
}

func (v *Sandbox) drainPresets() {
	if v.Presets == nil {
		return
	}
	for {
		select {
		case p := <-v.Presets:
			if err := p.Apply(v.Scene); err != nil {
				v.Log.Warn("preset rejected", "preset", p.Name, "err", err)
				continue
			}
			v.Tool.Cancel()
			v.Log.Info("preset applied", "preset", p.Name)
		default:
			return
		}
	}
}

// resize keeps the walls on the window edges.
func (v *Sandbox) resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	v.Scene.World().Bounds = r2.RectFromPoints(r2.Point{}, r2.Point{X: w, Y: h})
}

func (v *Sandbox) handleKeys() {
	for i, t := range tool.All() {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			v.Tool.Select(t)
			v.Log.Debug("tool selected", "tool", t)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		v.Tool.Cancel()
	}
	for _, hk := range hotkeys {
		if rl.IsKeyPressed(hk.key) {
			if err := v.Commands.ExecuteLine(hk.line); err != nil {
				v.Log.Warn("command failed", "command", hk.line, "err", err)
			}
		}
	}
}

func (v *Sandbox) handleMouse() {
	p := point(rl.GetMousePosition())
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		if err := v.Tool.Press(p); err != nil {
			v.Log.Warn("press failed", "tool", v.Tool.Tool, "err", err)
		}
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		id, err := v.Tool.Release(p)
		switch {
		case errors.Is(err, scene.ErrTooSmall):
			v.Log.Debug("gesture too small", "tool", v.Tool.Tool)
		case err != nil:
			v.Log.Warn("release failed", "tool", v.Tool.Tool, "err", err)
		case id != uuid.Nil:
			v.Log.Debug("created", "tool", v.Tool.Tool, "id", id)
		}
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		if err := v.Tool.Drag(p); err != nil {
			v.Log.Warn("drag failed", "tool", v.Tool.Tool, "err", err)
		}
	}
}

// Draw renders obstacles, bodies, the gesture preview and the HUD.
func (v *Sandbox) Draw() {
	for _, o := range v.Scene.Obstacles() {
		drawShape(o.Shape, o.Color, 0, false)
	}
	for _, b := range v.Scene.Bodies() {
		rl.DrawCircleV(vec2(b.Pos), float32(b.Radius), palette.RGBA(b.Color))
	}
	v.drawGesture()

	if v.HUD != nil {
		v.HUD.ShowLog = v.Console == nil || !v.Console.IsOpen()
		v.HUD.Draw(v.status())
	}
	if v.Console != nil {
		v.Console.Draw()
	}
}

func (v *Sandbox) drawGesture() {
	start, current, ok := v.Tool.Active()
	if !ok {
		return
	}
	col := palette.Tint(v.previewColor, previewTint)
	if v.Tool.Tool == tool.Launch {
		// Slingshot: the band runs from the press point to the cursor.
		rl.DrawCircleLinesV(vec2(start), float32(v.Tool.BodyRadius), col)
		rl.DrawLineEx(vec2(start), vec2(current), 2, col)
		return
	}
	if shape, ok := tool.Preview(v.Tool.Tool, start, current); ok {
		drawShape(shape, v.previewColor, previewTint, true)
	}
}

func (v *Sandbox) status() string {
	state := "running"
	if !v.Scene.Running() {
		state = "paused"
	}
	bodies, obstacles := v.Scene.Len()
	return fmt.Sprintf("[%d] %s  %s  bodies=%d shapes=%d", int(v.Tool.Tool)+1, v.Tool.Tool, state, bodies, obstacles)
}
