package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Normalize returns v scaled to unit length. A zero vector is returned unchanged;
// callers that need a direction must check for that themselves.
func Normalize(v r2.Point) r2.Point {
	return v.Normalize()
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n.
// n must already be unit length, otherwise the result is scaled.
func Reflect(v, n r2.Point) r2.Point {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// ClosestPointOnSegment projects p onto segment ab and returns the projected point
// and its parameter t. t is clamped to [0,1] so the result never leaves the segment.
// A zero-length segment returns a with t = 0.
func ClosestPointOnSegment(p, a, b r2.Point) (r2.Point, float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a, 0
	}
	t := clamp01(p.Sub(a).Dot(ab) / lenSq)
	return a.Add(ab.Mul(t)), t
}

// Distance returns |a - b|.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// Finite reports whether both components are neither NaN nor infinite.
func Finite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
