package physics

import (
	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// DefaultRadius replaces a non-positive radius passed to NewBody.
const DefaultRadius = 10

// Body is a moving circle in the 2D world. Position and velocity are mutated every tick
// by the integrator and the resolver. Color is only carried for renderers.
type Body struct {
	ID     uuid.UUID
	Pos    r2.Point
	Vel    r2.Point
	Radius float64
	Color  string
}

// NewBody returns a body at pos moving with vel and a fresh id.
// radius <= 0 falls back to DefaultRadius so the world never holds a zero-size circle.
func NewBody(pos, vel r2.Point, radius float64, color string) *Body {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Body{
		ID:     uuid.New(),
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Color:  color,
	}
}

// Speed returns |Vel|.
func (b *Body) Speed() float64 {
	return b.Vel.Norm()
}

// Obstacle is a static shape bodies bounce off. It does not move during a tick;
// the scene may replace its Shape between ticks.
type Obstacle struct {
	ID    uuid.UUID
	Shape Shape
	Color string
}

// NewObstacle wraps shape with a fresh id.
func NewObstacle(shape Shape, color string) *Obstacle {
	return &Obstacle{ID: uuid.New(), Shape: shape, Color: color}
}
