package physics

import (
	"toybox/internal/geom"

	"github.com/golang/geo/r2"
)

// Contact describes one body/obstacle overlap. Normal is unit length and points from the
// obstacle surface toward the body centre; Depth is how far the body reaches past the surface.
type Contact struct {
	Normal r2.Point
	Point  r2.Point
	Depth  float64
}

// Detect runs the detector matching the obstacle's shape.
func Detect(b *Body, o *Obstacle) (Contact, bool) {
	if o == nil || o.Shape == nil {
		return Contact{}, false
	}
	return o.Shape.Collide(b)
}

// CircleSegment tests the body against segment ab. A hit needs the closest point of the
// segment to be within the radius. When the centre sits exactly on the segment the normal
// falls back to the segment perpendicular, flipped to face against the body's motion.
// A zero-length segment under the centre has no usable normal and never collides.
func CircleSegment(b *Body, a, bb r2.Point) (Contact, bool) {
	closest, _ := geom.ClosestPointOnSegment(b.Pos, a, bb)
	delta := b.Pos.Sub(closest)
	dist := delta.Norm()
	if dist > b.Radius {
		return Contact{}, false
	}
	if dist > 0 {
		return Contact{Normal: delta.Mul(1 / dist), Point: closest, Depth: b.Radius - dist}, true
	}

	n := geom.Normalize(bb.Sub(a).Ortho())
	if n.X == 0 && n.Y == 0 {
		return Contact{}, false
	}
	if b.Vel.Dot(n) > 0 {
		n = n.Mul(-1)
	}
	return Contact{Normal: n, Point: closest, Depth: b.Radius}, true
}

// CircleRect clamps the body centre into rect to find the closest point and tests its
// distance against the radius. A centre inside the rectangle is pushed out through the
// nearest edge.
func CircleRect(b *Body, rect r2.Rect) (Contact, bool) {
	if rect.IsEmpty() {
		return Contact{}, false
	}
	closest := rect.ClampPoint(b.Pos)
	delta := b.Pos.Sub(closest)
	dist := delta.Norm()
	if dist > b.Radius {
		return Contact{}, false
	}
	if dist > 0 {
		return Contact{Normal: delta.Mul(1 / dist), Point: closest, Depth: b.Radius - dist}, true
	}
	return insideRect(b, rect), true
}

// insideRect picks the edge nearest to a centre that lies within rect.
func insideRect(b *Body, rect r2.Rect) Contact {
	p := b.Pos
	c := Contact{Normal: r2.Point{X: -1}, Point: r2.Point{X: rect.X.Lo, Y: p.Y}, Depth: p.X - rect.X.Lo}
	if d := rect.X.Hi - p.X; d < c.Depth {
		c = Contact{Normal: r2.Point{X: 1}, Point: r2.Point{X: rect.X.Hi, Y: p.Y}, Depth: d}
	}
	if d := p.Y - rect.Y.Lo; d < c.Depth {
		c = Contact{Normal: r2.Point{Y: -1}, Point: r2.Point{X: p.X, Y: rect.Y.Lo}, Depth: d}
	}
	if d := rect.Y.Hi - p.Y; d < c.Depth {
		c = Contact{Normal: r2.Point{Y: 1}, Point: r2.Point{X: p.X, Y: rect.Y.Hi}, Depth: d}
	}
	c.Depth += b.Radius
	return c
}

// CircleCircle tests the body against a static circle. Coincident centres have no
// direction to separate along and are reported as no collision.
func CircleCircle(b *Body, center r2.Point, radius float64) (Contact, bool) {
	delta := b.Pos.Sub(center)
	dist := delta.Norm()
	reach := b.Radius + radius
	if dist == 0 || dist > reach {
		return Contact{}, false
	}
	n := delta.Mul(1 / dist)
	return Contact{Normal: n, Point: center.Add(n.Mul(radius)), Depth: reach - dist}, true
}

// CircleTriangle tests each edge with CircleSegment. Any edge hit counts; when more than
// one edge touches (a corner), the deepest contact is returned.
func CircleTriangle(b *Body, t Triangle) (Contact, bool) {
	var best Contact
	hit := false
	for _, e := range t.Edges() {
		c, ok := CircleSegment(b, e.A, e.B)
		if !ok {
			continue
		}
		if !hit || c.Depth > best.Depth {
			best = c
			hit = true
		}
	}
	return best, hit
}
