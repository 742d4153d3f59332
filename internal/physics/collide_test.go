package physics

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func body(x, y, r float64) *Body {
	return &Body{Pos: pt(x, y), Radius: r}
}

func assertPoint(t *testing.T, want, got r2.Point, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msgAndArgs...)
}

func TestCircleSegment(t *testing.T) {
	a, b := pt(0, 0), pt(10, 0)

	tests := []struct {
		name      string
		body      *Body
		wantHit   bool
		wantN     r2.Point
		wantDepth float64
	}{
		{"above interior", body(5, 3, 5), true, pt(0, 1), 2},
		{"below interior", body(5, -4, 5), true, pt(0, -1), 1},
		{"out of reach", body(5, 6, 5), false, r2.Point{}, 0},
		{"near endpoint", body(-3, 4, 6), true, pt(-0.6, 0.8), 1},
		{"touching", body(5, 5, 5), true, pt(0, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := CircleSegment(tt.body, a, b)
			require.Equal(t, tt.wantHit, ok)
			if !ok {
				return
			}
			assertPoint(t, tt.wantN, c.Normal)
			assert.InDelta(t, tt.wantDepth, c.Depth, 1e-9)
			assert.InDelta(t, 1.0, c.Normal.Norm(), 1e-9)
		})
	}
}

func TestCircleSegmentCentreOnSegment(t *testing.T) {
	a, b := pt(0, 0), pt(10, 0)

	falling := body(5, 0, 5)
	falling.Vel = pt(0, -10)
	c, ok := CircleSegment(falling, a, b)
	require.True(t, ok)
	assertPoint(t, pt(0, 1), c.Normal)
	assert.InDelta(t, 5.0, c.Depth, 1e-9)

	rising := body(5, 0, 5)
	rising.Vel = pt(0, 10)
	c, ok = CircleSegment(rising, a, b)
	require.True(t, ok)
	assertPoint(t, pt(0, -1), c.Normal, "normal faces against the motion")
}

func TestCircleSegmentDegenerate(t *testing.T) {
	p := pt(3, 3)
	_, ok := CircleSegment(body(3, 3, 5), p, p)
	assert.False(t, ok, "zero-length segment under the centre has no normal")

	c, ok := CircleSegment(body(3, 7, 5), p, p)
	require.True(t, ok, "zero-length segment still acts as a point")
	assertPoint(t, pt(0, 1), c.Normal)
}

func TestCircleRect(t *testing.T) {
	rect := Rect{X: 0, Y: 0, W: 10, H: 10}.Bounds()

	tests := []struct {
		name      string
		body      *Body
		wantHit   bool
		wantN     r2.Point
		wantDepth float64
		wantPoint r2.Point
	}{
		{"right face", body(15, 5, 6), true, pt(1, 0), 1, pt(10, 5)},
		{"miss", body(15, 5, 4), false, r2.Point{}, 0, r2.Point{}},
		{"corner", body(13, 14, 6), true, pt(0.6, 0.8), 1, pt(10, 10)},
		{"centre inside near left", body(2, 5, 3), true, pt(-1, 0), 5, pt(0, 5)},
		{"centre inside near top", body(5, 9, 3), true, pt(0, 1), 4, pt(5, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := CircleRect(tt.body, rect)
			require.Equal(t, tt.wantHit, ok)
			if !ok {
				return
			}
			assertPoint(t, tt.wantN, c.Normal)
			assertPoint(t, tt.wantPoint, c.Point)
			assert.InDelta(t, tt.wantDepth, c.Depth, 1e-9)
		})
	}
}

func TestRectNegativeExtent(t *testing.T) {
	dragged := Rect{X: 10, Y: 10, W: -10, H: -10}
	assert.Equal(t, Rect{W: 10, H: 10}.Bounds(), dragged.Bounds())

	_, ok := dragged.Collide(body(15, 5, 6))
	assert.True(t, ok)
}

func TestCircleCircle(t *testing.T) {
	_, ok := CircleCircle(body(25, 0, 10), pt(0, 0), 10)
	assert.False(t, ok, "25 apart with radii 10+10")

	c, ok := CircleCircle(body(15, 0, 10), pt(0, 0), 10)
	require.True(t, ok)
	assertPoint(t, pt(1, 0), c.Normal)
	assertPoint(t, pt(10, 0), c.Point)
	assert.InDelta(t, 5.0, c.Depth, 1e-9)

	_, ok = CircleCircle(body(0, 0, 10), pt(0, 0), 10)
	assert.False(t, ok, "coincident centres are not a collision")
}

func TestCircleTriangle(t *testing.T) {
	tri := Triangle{A: pt(0, 0), B: pt(10, 0), C: pt(5, 10)}

	c, ok := CircleTriangle(body(5, -3, 5), tri)
	require.True(t, ok)
	assertPoint(t, pt(0, -1), c.Normal)
	assert.InDelta(t, 2.0, c.Depth, 1e-9)

	_, ok = CircleTriangle(body(50, 50, 5), tri)
	assert.False(t, ok)

	// Only edges collide: a small body wholly inside touches none of them.
	_, ok = CircleTriangle(body(5, 3, 1), tri)
	assert.False(t, ok)
}

func TestCircleTriangleCornerPicksDeepest(t *testing.T) {
	tri := Triangle{A: pt(0, 0), B: pt(10, 0), C: pt(0, 10)}
	// Just below AB and left of CA, closer to AB.
	c, ok := CircleTriangle(body(1, -1, 3), tri)
	require.True(t, ok)
	assert.InDelta(t, 2.0, c.Depth, 1e-9)
	assertPoint(t, pt(0, -1), c.Normal)
}

func TestDetectDispatchesOnShape(t *testing.T) {
	b := body(15, 0, 10)
	shapes := []Shape{
		Circle{Center: pt(0, 0), R: 10},
		Segment{A: pt(8, -20), B: pt(8, 20)},
		Rect{X: -10, Y: -10, W: 20, H: 20},
		Triangle{A: pt(8, -20), B: pt(8, 20), C: pt(-20, 0)},
	}
	for _, s := range shapes {
		_, ok := Detect(b, &Obstacle{Shape: s})
		assert.True(t, ok, s.Kind().String())
	}
	_, ok := Detect(b, &Obstacle{})
	assert.False(t, ok)
}

func TestShapeHit(t *testing.T) {
	assert.True(t, Segment{A: pt(0, 0), B: pt(10, 0)}.Hit(pt(5, 2), 3))
	assert.False(t, Segment{A: pt(0, 0), B: pt(10, 0)}.Hit(pt(5, 4), 3))
	assert.True(t, Rect{X: 0, Y: 0, W: 10, H: 10}.Hit(pt(11, 5), 2))
	assert.True(t, Circle{Center: pt(0, 0), R: 5}.Hit(pt(3, 3), 0))
	assert.True(t, Triangle{A: pt(0, 0), B: pt(10, 0), C: pt(5, 10)}.Hit(pt(5, 3), 0))
	assert.False(t, Triangle{A: pt(0, 0), B: pt(10, 0), C: pt(5, 10)}.Hit(pt(-5, 3), 0))
}

func TestShapeTranslate(t *testing.T) {
	d := pt(3, -2)
	assert.Equal(t, Segment{A: pt(3, -2), B: pt(4, -1)}, Segment{A: pt(0, 0), B: pt(1, 1)}.Translate(d))
	assert.Equal(t, Rect{X: 3, Y: -2, W: 5, H: 5}, Rect{W: 5, H: 5}.Translate(d))
	assert.Equal(t, Circle{Center: pt(3, -2), R: 1}, Circle{R: 1}.Translate(d))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindSegment, KindRect, KindCircle, KindTriangle} {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("hexagon")
	assert.False(t, ok)
}
