package physics

import (
	"math"

	"toybox/internal/geom"

	"github.com/golang/geo/r2"
)

// Kind tags the concrete type behind a Shape.
type Kind uint8

const (
	KindSegment Kind = iota
	KindRect
	KindCircle
	KindTriangle
)

var kindNames = [...]string{
	KindSegment:  "line",
	KindRect:     "rect",
	KindCircle:   "circle",
	KindTriangle: "triangle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a name produced by Kind.String back to the Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Shape is the geometry of an obstacle. Implementations are small value types so that
// copying an Obstacle copies its geometry.
type Shape interface {
	Kind() Kind
	// Collide tests a moving body against the shape.
	Collide(b *Body) (Contact, bool)
	// Translate returns the shape moved by d.
	Translate(d r2.Point) Shape
	// Bounds returns the axis-aligned bounding box.
	Bounds() r2.Rect
	// Hit reports whether p lies on or inside the shape, with slop for thin shapes.
	Hit(p r2.Point, slop float64) bool
}

// Segment is a line obstacle from A to B.
type Segment struct {
	A, B r2.Point
}

func (s Segment) Kind() Kind { return KindSegment }

func (s Segment) Collide(b *Body) (Contact, bool) {
	return CircleSegment(b, s.A, s.B)
}

func (s Segment) Translate(d r2.Point) Shape {
	return Segment{A: s.A.Add(d), B: s.B.Add(d)}
}

func (s Segment) Bounds() r2.Rect {
	return r2.RectFromPoints(s.A, s.B)
}

func (s Segment) Hit(p r2.Point, slop float64) bool {
	c, _ := geom.ClosestPointOnSegment(p, s.A, s.B)
	return geom.Distance(p, c) <= slop
}

// Length returns |B - A|.
func (s Segment) Length() float64 {
	return geom.Distance(s.A, s.B)
}

// Rect is an axis-aligned rectangle anchored at (X, Y). W and H may be negative when
// built straight from a drag gesture; Bounds normalises them.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Kind() Kind { return KindRect }

func (r Rect) Collide(b *Body) (Contact, bool) {
	return CircleRect(b, r.Bounds())
}

func (r Rect) Translate(d r2.Point) Shape {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

func (r Rect) Bounds() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: r.X, Y: r.Y}, r2.Point{X: r.X + r.W, Y: r.Y + r.H})
}

func (r Rect) Hit(p r2.Point, slop float64) bool {
	return r.Bounds().ExpandedByMargin(slop).ContainsPoint(p)
}

// Circle is a round obstacle.
type Circle struct {
	Center r2.Point
	R      float64
}

func (c Circle) Kind() Kind { return KindCircle }

func (c Circle) Collide(b *Body) (Contact, bool) {
	return CircleCircle(b, c.Center, c.R)
}

func (c Circle) Translate(d r2.Point) Shape {
	return Circle{Center: c.Center.Add(d), R: c.R}
}

func (c Circle) Bounds() r2.Rect {
	return r2.RectFromCenterSize(c.Center, r2.Point{X: 2 * c.R, Y: 2 * c.R})
}

func (c Circle) Hit(p r2.Point, slop float64) bool {
	return geom.Distance(p, c.Center) <= c.R+slop
}

// Triangle is a static triangle; only its three edges collide.
type Triangle struct {
	A, B, C r2.Point
}

func (t Triangle) Kind() Kind { return KindTriangle }

func (t Triangle) Collide(b *Body) (Contact, bool) {
	return CircleTriangle(b, t)
}

func (t Triangle) Translate(d r2.Point) Shape {
	return Triangle{A: t.A.Add(d), B: t.B.Add(d), C: t.C.Add(d)}
}

func (t Triangle) Bounds() r2.Rect {
	return r2.RectFromPoints(t.A, t.B, t.C)
}

func (t Triangle) Hit(p r2.Point, slop float64) bool {
	for _, e := range t.Edges() {
		if e.Hit(p, slop) {
			return true
		}
	}
	// Same-sign cross products on every edge means p is inside.
	d1 := t.B.Sub(t.A).Cross(p.Sub(t.A))
	d2 := t.C.Sub(t.B).Cross(p.Sub(t.B))
	d3 := t.A.Sub(t.C).Cross(p.Sub(t.C))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// Edges returns AB, BC, CA in that order.
func (t Triangle) Edges() [3]Segment {
	return [3]Segment{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

// Area returns the unsigned area.
func (t Triangle) Area() float64 {
	return math.Abs(t.B.Sub(t.A).Cross(t.C.Sub(t.A))) / 2
}
