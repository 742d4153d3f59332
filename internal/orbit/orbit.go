package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxEccentricity keeps every orbit a closed ellipse.
	MaxEccentricity = 0.95
	// MaxStep caps a single tick, like the sandbox does.
	MaxStep = 1.0 / 30
	// MaxTimeScale bounds the speed-up slider.
	MaxTimeScale = 100
)

// EllipticalPosition returns the position on an ellipse with semi-major axis a and
// eccentricity e at the given true anomaly, with the focus at the origin:
// r = a(1-e²)/(1+e·cos θ), x = r·cos θ, z = r·sin θ.
func EllipticalPosition(angle, a, e float64) (x, z, r float64) {
	r = a * (1 - e*e) / (1 + e*math.Cos(angle))
	return math.Cos(angle) * r, math.Sin(angle) * r, r
}

// Body orbits its parent's position (the origin when Parent is nil).
// Size and Color are render attributes and do not affect motion.
type Body struct {
	Name         string
	Angle        float64
	Distance     float64
	Eccentricity float64
	Speed        float64
	Size         float64
	Color        string
	Parent       *Body
}

// NewBody returns a body with eccentricity clamped to [0, MaxEccentricity].
// A non-positive distance is replaced with 1.
func NewBody(name string, distance, eccentricity, speed float64) *Body {
	if distance <= 0 {
		distance = 1
	}
	return &Body{
		Name:         name,
		Distance:     distance,
		Eccentricity: clampEccentricity(eccentricity),
		Speed:        speed,
		Size:         1,
	}
}

func clampEccentricity(e float64) float64 {
	if math.IsNaN(e) || e < 0 {
		return 0
	}
	if e > MaxEccentricity {
		return MaxEccentricity
	}
	return e
}

// Radius returns the current distance from the focus.
func (b *Body) Radius() float64 {
	_, _, r := EllipticalPosition(b.Angle, b.Distance, b.Eccentricity)
	return r
}

// Perihelion is the closest approach, a(1-e), reached at angle 0.
func (b *Body) Perihelion() float64 { return b.Distance * (1 - b.Eccentricity) }

// Aphelion is the farthest distance, a(1+e), reached at angle π.
func (b *Body) Aphelion() float64 { return b.Distance * (1 + b.Eccentricity) }

// Local returns the position relative to the focus on the XZ plane.
func (b *Body) Local() mgl64.Vec3 {
	x, z, _ := EllipticalPosition(b.Angle, b.Distance, b.Eccentricity)
	return mgl64.Vec3{x, 0, z}
}

// Position returns the world position, following the Parent chain.
func (b *Body) Position() mgl64.Vec3 {
	p := b.Local()
	for parent := b.Parent; parent != nil; parent = parent.Parent {
		p = p.Add(parent.Local())
	}
	return p
}

// Advance moves the body along its orbit. Angular speed is scaled by Distance/r so the
// body speeds up near the focus, which approximates equal areas in equal times without
// integrating a two-body problem. The angle is never wrapped; the trig functions are periodic.
func (b *Body) Advance(dt, timeScale float64) {
	r := b.Radius()
	if r <= 0 || dt <= 0 {
		return
	}
	b.Angle += b.Speed * dt * timeScale * (b.Distance / r)
}

// Path samples the full ellipse in world space around the parent's current position.
// The first point is repeated at the end so the result can be drawn as a closed strip.
func (b *Body) Path(segments int) []mgl64.Vec3 {
	if segments < 3 {
		segments = 3
	}
	var origin mgl64.Vec3
	if b.Parent != nil {
		origin = b.Parent.Position()
	}
	pts := make([]mgl64.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, z, _ := EllipticalPosition(theta, b.Distance, b.Eccentricity)
		pts = append(pts, origin.Add(mgl64.Vec3{x, 0, z}))
	}
	return pts
}

// System is the set of bodies advanced together with a shared time multiplier.
type System struct {
	Bodies    []*Body
	TimeScale float64
	Running   bool
	MaxStep   float64
}

// NewSystem returns a running system at real time.
func NewSystem(bodies ...*Body) *System {
	return &System{Bodies: bodies, TimeScale: 1, Running: true, MaxStep: MaxStep}
}

// Tick advances every body by the capped frame delta and returns the dt used.
// Nothing moves while paused or when dtRaw is not a positive finite number.
func (s *System) Tick(dtRaw float64) float64 {
	if !s.Running || math.IsNaN(dtRaw) || math.IsInf(dtRaw, 0) || dtRaw <= 0 {
		return 0
	}
	dt := dtRaw
	if s.MaxStep > 0 && dt > s.MaxStep {
		dt = s.MaxStep
	}
	for _, b := range s.Bodies {
		b.Advance(dt, s.TimeScale)
	}
	return dt
}

// SetTimeScale sets the multiplier, clamped to [0, MaxTimeScale].
func (s *System) SetTimeScale(v float64) {
	switch {
	case math.IsNaN(v) || v < 0:
		v = 0
	case v > MaxTimeScale:
		v = MaxTimeScale
	}
	s.TimeScale = v
}

// Toggle flips between running and paused.
func (s *System) Toggle() {
	s.Running = !s.Running
}

// Find returns the body with the given name, or nil.
func (s *System) Find(name string) *Body {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}
