package physics

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// StepStats counts what happened during one or more steps.
type StepStats struct {
	Dt         float64
	Bounces    int
	Collisions int
}

// Add accumulates o into s.
func (s *StepStats) Add(o StepStats) {
	s.Dt += o.Dt
	s.Bounces += o.Bounces
	s.Collisions += o.Collisions
}

// World holds the moving bodies, the static obstacles and the rectangle they live in,
// and runs the 2D step: integrate, bounce off the walls, then bounce off obstacles.
type World struct {
	Bounds    r2.Rect
	MaxStep   float64
	Bodies    []*Body
	Obstacles []*Obstacle
}

// NewWorld returns an empty world spanning [0,width]×[0,height] with the default step cap.
func NewWorld(width, height float64) *World {
	return &World{
		Bounds:  r2.RectFromPoints(r2.Point{}, r2.Point{X: width, Y: height}),
		MaxStep: MaxStep,
	}
}

// AddBody appends a body. Order is only used for deterministic iteration.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// AddObstacle appends an obstacle. Obstacles earlier in the list resolve first.
func (w *World) AddObstacle(o *Obstacle) {
	w.Obstacles = append(w.Obstacles, o)
}

// RemoveBody drops the body with id and reports whether it existed.
func (w *World) RemoveBody(id uuid.UUID) bool {
	for i, b := range w.Bodies {
		if b.ID == id {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveObstacle drops the obstacle with id and reports whether it existed.
func (w *World) RemoveObstacle(id uuid.UUID) bool {
	for i, o := range w.Obstacles {
		if o.ID == id {
			w.Obstacles = append(w.Obstacles[:i], w.Obstacles[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every body and obstacle.
func (w *World) Clear() {
	w.Bodies = nil
	w.Obstacles = nil
}

// Tick is the per-frame entry point: dtRaw is the wall-clock frame delta. It is capped at
// MaxStep and replaced by 0 while paused, in which case nothing moves.
func (w *World) Tick(dtRaw float64, running bool) StepStats {
	dt := ClampStep(dtRaw, w.MaxStep, running)
	if dt == 0 {
		return StepStats{}
	}
	return w.Step(dt)
}

// Step advances the world by exactly dt seconds without capping it.
// Each body is integrated and clamped to the bounds, then tested against every obstacle in
// list order. Contacts are resolved one after another; a push-out that lands the body in a
// later obstacle is handled by that obstacle in the same pass, one that lands it in an
// earlier obstacle waits for the next step.
func (w *World) Step(dt float64) StepStats {
	stats := StepStats{Dt: dt}
	for _, b := range w.Bodies {
		Integrate(b, dt)
		stats.Bounces += Bounce(b, w.Bounds)
		for _, o := range w.Obstacles {
			c, ok := Detect(b, o)
			if !ok {
				continue
			}
			if Resolve(b, c) {
				stats.Collisions++
			}
		}
	}
	return stats
}

// MaxAdvance is the longest span Advance simulates in one call, in seconds. Longer
// totals are cut to it; callers taking user input reject them first.
const MaxAdvance = 3600.0

// Advance runs total seconds of simulation in sub-steps no longer than MaxStep.
// Used by headless runs where there is no frame clock to cap. The number of sub-steps
// is fixed up front so rounding in the remaining time cannot stall the loop.
func (w *World) Advance(total float64) StepStats {
	var stats StepStats
	if !(total > 0) || math.IsInf(total, 1) {
		return stats
	}
	total = min(total, MaxAdvance)
	if w.MaxStep <= 0 {
		return w.Step(total)
	}
	n := int(math.Ceil(total / w.MaxStep))
	for i := range n {
		dt := min(w.MaxStep, total-float64(i)*w.MaxStep)
		if dt <= 0 {
			break
		}
		stats.Add(w.Step(dt))
	}
	return stats
}
