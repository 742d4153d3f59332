// Package render draws the sandbox and the orbital model with raylib and feeds mouse and
// keyboard input back into them.
package render

import (
	"toybox/internal/palette"
	"toybox/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
)

const lineThickness = 3

func vec2(p r2.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func point(v rl.Vector2) r2.Point {
	return r2.Point{X: float64(v.X), Y: float64(v.Y)}
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// drawShape fills s, or outlines it when outline is set.
func drawShape(s physics.Shape, hex string, tint float64, outline bool) {
	col := palette.Tint(hex, tint)
	switch s := s.(type) {
	case physics.Segment:
		rl.DrawLineEx(vec2(s.A), vec2(s.B), lineThickness, col)
	case physics.Rect:
		b := s.Bounds()
		rec := rl.NewRectangle(float32(b.X.Lo), float32(b.Y.Lo), float32(b.X.Length()), float32(b.Y.Length()))
		if outline {
			rl.DrawRectangleLinesEx(rec, 2, col)
		} else {
			rl.DrawRectangleRec(rec, col)
		}
	case physics.Circle:
		if outline {
			rl.DrawCircleLinesV(vec2(s.Center), float32(s.R), col)
		} else {
			rl.DrawCircleV(vec2(s.Center), float32(s.R), col)
		}
	case physics.Triangle:
		a, b, c := vec2(s.A), vec2(s.B), vec2(s.C)
		if outline {
			rl.DrawTriangleLines(a, b, c, col)
			return
		}
		// raylib skips clockwise triangles; one of the two windings is always drawn.
		rl.DrawTriangle(a, b, c, col)
		rl.DrawTriangle(a, c, b, col)
	}
}
