package physics

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePreservesSpeed(t *testing.T) {
	vel := pt(40, -25)
	for deg := 0.0; deg < 360; deg += 10 {
		rad := deg * math.Pi / 180
		n := pt(math.Cos(rad), math.Sin(rad))
		b := &Body{Vel: vel, Radius: 5}
		changed := Resolve(b, Contact{Normal: n, Depth: 1})
		if vel.Dot(n) >= 0 {
			assert.False(t, changed, "normal at %v degrees is separating", deg)
			continue
		}
		require.True(t, changed, "normal at %v degrees", deg)
		assert.InDelta(t, vel.Norm(), b.Vel.Norm(), 1e-9, "normal at %v degrees", deg)
		assert.GreaterOrEqual(t, b.Vel.Dot(n), 0.0, "reflected velocity leaves the surface")
	}
}

func TestResolveSeparatingIsNoop(t *testing.T) {
	tests := []struct {
		name string
		vel  r2.Point
	}{
		{"moving away", pt(0, 10)},
		{"sliding along", pt(10, 0)},
		{"at rest", pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{Pos: pt(5, 3), Vel: tt.vel, Radius: 5}
			before := *b
			assert.False(t, Resolve(b, Contact{Normal: pt(0, 1), Depth: 2}))
			assert.Equal(t, before, *b)
		})
	}
}

func TestResolvePushesOutOfSegment(t *testing.T) {
	a, bb := pt(0, 0), pt(10, 0)
	b := &Body{Pos: pt(5, 3), Vel: pt(0, -10), Radius: 5}

	c, ok := CircleSegment(b, a, bb)
	require.True(t, ok)
	require.True(t, Resolve(b, c))

	assertPoint(t, pt(0, 10), b.Vel)
	assert.InDelta(t, 5.5, b.Pos.Y, 1e-9)
	_, ok = CircleSegment(b, a, bb)
	assert.False(t, ok, "body sits clear of the surface after push-out")
}

func TestResolveNonPenetrationAllShapes(t *testing.T) {
	shapes := []Shape{
		Segment{A: pt(-20, 0), B: pt(20, 0)},
		Rect{X: -20, Y: -10, W: 40, H: 10},
		Circle{Center: pt(0, -10), R: 10},
		Triangle{A: pt(-20, 0), B: pt(20, 0), C: pt(0, -20)},
	}
	for _, s := range shapes {
		t.Run(s.Kind().String(), func(t *testing.T) {
			b := &Body{Pos: pt(0, 4), Vel: pt(3, -30), Radius: 6}
			c, ok := s.Collide(b)
			require.True(t, ok)
			speed := b.Speed()
			require.True(t, Resolve(b, c))
			assert.InDelta(t, speed, b.Speed(), 1e-9)

			after, ok := s.Collide(b)
			if ok {
				assert.LessOrEqual(t, after.Depth, 0.0)
			}
		})
	}
}
