// Package tool turns pointer gestures on the sandbox canvas into scene operations.
// A gesture is a press followed by a release; what it creates depends on the active tool.
package tool

import (
	"fmt"
	"math"

	"toybox/internal/geom"
	"toybox/internal/palette"
	"toybox/internal/physics"
	"toybox/internal/scene"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// Tool is the active pointer mode.
type Tool uint8

const (
	Launch Tool = iota
	Line
	Rect
	Circle
	Triangle
	Move
	Delete
)

var toolNames = [...]string{
	Launch:   "launch",
	Line:     "line",
	Rect:     "rect",
	Circle:   "circle",
	Triangle: "triangle",
	Move:     "move",
	Delete:   "delete",
}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// Parse maps a tool name back to the Tool.
func Parse(s string) (Tool, error) {
	for t, name := range toolNames {
		if name == s {
			return Tool(t), nil
		}
	}
	return 0, fmt.Errorf("tool: unknown tool %q", s)
}

// All lists the tools in hotkey order.
func All() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

// DefaultLaunchScale turns a drag in pixels into a velocity in pixels per second.
const DefaultLaunchScale = 3

// HitSlop is how far from a thin shape a press still grabs it.
const HitSlop = 4

// Controller tracks one gesture at a time against a scene.
type Controller struct {
	Scene       *scene.Scene
	Palette     *palette.Palette
	Tool        Tool
	LaunchScale float64
	BodyRadius  float64

	pressed bool
	start   r2.Point
	current r2.Point
	grabbed uuid.UUID
}

// New returns a controller with the launch tool selected.
func New(s *scene.Scene, p *palette.Palette) *Controller {
	return &Controller{
		Scene:       s,
		Palette:     p,
		LaunchScale: DefaultLaunchScale,
		BodyRadius:  physics.DefaultRadius,
	}
}

// Select switches tool and abandons any gesture in progress.
func (c *Controller) Select(t Tool) {
	c.Tool = t
	c.Cancel()
}

// Cancel drops the current gesture without touching the scene.
func (c *Controller) Cancel() {
	c.pressed = false
	c.grabbed = uuid.Nil
}

// Active reports whether a gesture is in progress, and its endpoints.
func (c *Controller) Active() (start, current r2.Point, ok bool) {
	return c.start, c.current, c.pressed
}

// Press starts a gesture. The move tool grabs whatever is under p; the delete tool acts
// immediately.
func (c *Controller) Press(p r2.Point) error {
	if !geom.Finite(p) {
		return scene.ErrInvalid
	}
	c.pressed = true
	c.start, c.current = p, p
	switch c.Tool {
	case Move:
		id, ok := c.Scene.HitTest(p, HitSlop)
		if !ok {
			c.Cancel()
			return nil
		}
		c.grabbed = id
	case Delete:
		c.Cancel()
		if id, ok := c.Scene.HitTest(p, HitSlop); ok {
			return c.Scene.Delete(id)
		}
	}
	return nil
}

// Drag updates the gesture. Only the move tool changes the scene while dragging.
func (c *Controller) Drag(p r2.Point) error {
	if !c.pressed || !geom.Finite(p) {
		return nil
	}
	prev := c.current
	c.current = p
	if c.Tool == Move && c.grabbed != uuid.Nil {
		return c.Scene.Move(c.grabbed, p.Sub(prev))
	}
	return nil
}

// Release finishes the gesture and returns the id of anything it created. Gestures below
// the scene's minimum sizes create nothing and return scene.ErrTooSmall.
func (c *Controller) Release(p r2.Point) (uuid.UUID, error) {
	if !c.pressed {
		return uuid.Nil, nil
	}
	if err := c.Drag(p); err != nil {
		c.Cancel()
		return uuid.Nil, err
	}
	start, end := c.start, c.current
	tool := c.Tool
	c.Cancel()

	switch tool {
	case Launch:
		return c.Scene.Launch(start, LaunchVelocity(start, end, c.LaunchScale), c.BodyRadius, c.nextColor())
	case Move, Delete:
		return uuid.Nil, nil
	}
	shape, ok := Preview(tool, start, end)
	if !ok {
		return uuid.Nil, scene.ErrInvalid
	}
	return c.Scene.AddObstacle(shape, c.nextColor())
}

func (c *Controller) nextColor() string {
	if c.Palette == nil {
		return ""
	}
	return c.Palette.Next()
}

// LaunchVelocity is the slingshot rule: the body flies opposite to the drag, faster the
// further it was pulled.
func LaunchVelocity(press, release r2.Point, scale float64) r2.Point {
	return press.Sub(release).Mul(scale)
}

// Preview returns the shape a drag from start to end would create with tool. Launch,
// move and delete have no shape.
func Preview(tool Tool, start, end r2.Point) (physics.Shape, bool) {
	switch tool {
	case Line:
		return physics.Segment{A: start, B: end}, true
	case Rect:
		return physics.Rect{X: start.X, Y: start.Y, W: end.X - start.X, H: end.Y - start.Y}, true
	case Circle:
		return physics.Circle{Center: start, R: geom.Distance(start, end)}, true
	case Triangle:
		// Isosceles in the drag box: base along the release edge, apex on the press edge.
		minX, maxX := math.Min(start.X, end.X), math.Max(start.X, end.X)
		return physics.Triangle{
			A: r2.Point{X: minX, Y: end.Y},
			B: r2.Point{X: maxX, Y: end.Y},
			C: r2.Point{X: (minX + maxX) / 2, Y: start.Y},
		}, true
	}
	return nil, false
}
