package render

import (
	"fmt"

	"toybox/internal/orbit"
	"toybox/internal/palette"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// pathTint fades orbit paths toward white so bodies stand out.
	pathTint = 0.6
	// timeStep is how much Up/Down change the time scale.
	timeStep = 2.0
)

// Orbits is the 3D front-end of the orbital model. The camera orbits the sun on its own.
type Orbits struct {
	System    *orbit.System
	Camera    rl.Camera3D
	ShowPaths bool
	Segments  int
	HUD       *HUD
}

// NewOrbits looks at the system from above and to the side, far enough to frame Neptune.
func NewOrbits(sys *orbit.System, segments int, showPaths bool, hud *HUD) *Orbits {
	return &Orbits{
		System: sys,
		Camera: rl.Camera3D{
			Position:   rl.NewVector3(0, 90, 140),
			Target:     rl.NewVector3(0, 0, 0),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
		ShowPaths: showPaths,
		Segments:  segments,
		HUD:       hud,
	}
}

// Update handles keys, moves the camera and advances the system.
func (o *Orbits) Update(dt float32) {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		o.System.Toggle()
	case rl.IsKeyPressed(rl.KeyP):
		o.ShowPaths = !o.ShowPaths
	case rl.IsKeyPressed(rl.KeyUp):
		o.System.SetTimeScale(o.System.TimeScale * timeStep)
	case rl.IsKeyPressed(rl.KeyDown):
		o.System.SetTimeScale(o.System.TimeScale / timeStep)
	case rl.IsKeyPressed(rl.KeyR):
		o.System.SetTimeScale(1)
	}
	rl.UpdateCamera(&o.Camera, rl.CameraOrbital)
	o.System.Tick(float64(dt))
}

// Draw renders the sun, the bodies and optionally their paths, then the HUD.
func (o *Orbits) Draw() {
	rl.BeginMode3D(o.Camera)
	rl.DrawSphere(rl.NewVector3(0, 0, 0), orbit.SunSize, palette.RGBA(orbit.SunColor))
	for _, b := range o.System.Bodies {
		if o.ShowPaths {
			pts := b.Path(o.Segments)
			col := palette.Tint(b.Color, pathTint)
			col.A = 0x80
			for i := 1; i < len(pts); i++ {
				rl.DrawLine3D(vec3(pts[i-1]), vec3(pts[i]), col)
			}
		}
		rl.DrawSphere(vec3(b.Position()), float32(b.Size), palette.RGBA(b.Color))
	}
	rl.EndMode3D()

	if o.HUD != nil {
		o.HUD.Draw(o.status())
	}
}

func (o *Orbits) status() string {
	state := "running"
	if !o.System.Running {
		state = "paused"
	}
	return fmt.Sprintf("%s  x%.2f", state, o.System.TimeScale)
}
