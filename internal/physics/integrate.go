package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// MaxStep caps the timestep of a single tick (seconds). Slow frames lose time instead of
// letting bodies tunnel through thin obstacles.
const MaxStep = 1.0 / 30

// ClampStep turns a raw frame delta into the dt used for physics: 0 while paused or when
// the delta is negative, NaN or infinite, otherwise at most limit.
func ClampStep(dtRaw, limit float64, running bool) float64 {
	if !running || math.IsNaN(dtRaw) || math.IsInf(dtRaw, 0) || dtRaw <= 0 {
		return 0
	}
	if limit > 0 && dtRaw > limit {
		return limit
	}
	return dtRaw
}

// Integrate moves the body along its velocity for dt seconds.
func Integrate(b *Body, dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

// Bounce keeps the body inside bounds. A body whose edge crosses a wall is clamped to it
// and its velocity component is turned back inward. Returns the number of walls hit.
func Bounce(b *Body, bounds r2.Rect) int {
	if bounds.IsEmpty() {
		return 0
	}
	hits := 0
	if v, vel, hit := bounceAxis(b.Pos.X, b.Vel.X, b.Radius, bounds.X.Lo, bounds.X.Hi); hit {
		b.Pos.X, b.Vel.X = v, vel
		hits++
	}
	if v, vel, hit := bounceAxis(b.Pos.Y, b.Vel.Y, b.Radius, bounds.Y.Lo, bounds.Y.Hi); hit {
		b.Pos.Y, b.Vel.Y = v, vel
		hits++
	}
	return hits
}

func bounceAxis(pos, vel, r, lo, hi float64) (float64, float64, bool) {
	first, last := lo+r, hi-r
	if first > last {
		// Wider than the world on this axis: park it in the middle.
		return (lo + hi) / 2, 0, pos != (lo+hi)/2 || vel != 0
	}
	switch {
	case pos < first:
		return first, math.Abs(vel), true
	case pos > last:
		return last, -math.Abs(vel), true
	}
	return pos, vel, false
}
