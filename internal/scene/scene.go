// Package scene owns the sandbox world: the bodies and obstacles the user creates, the
// running flag and the minimum-size rules for new entities. Every mutation goes through
// an opaque uuid, never a slice index.
package scene

import (
	"errors"
	"math"

	"toybox/internal/geom"
	"toybox/internal/physics"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	// ErrNotFound is returned when no body or obstacle has the given id.
	ErrNotFound = errors.New("scene: entity not found")
	// ErrTooSmall rejects gestures below the minimum size thresholds.
	ErrTooSmall = errors.New("scene: shape too small")
	// ErrInvalid rejects non-finite coordinates and nil shapes.
	ErrInvalid = errors.New("scene: invalid geometry")
)

// Limits are the thresholds a new entity must meet.
type Limits struct {
	// MinRadius is the smallest body or circle radius accepted.
	MinRadius float64
	// MinShape is the smallest segment length, rectangle side or triangle extent accepted.
	MinShape float64
}

// DefaultLimits matches what a click-without-drag produces on the canvas.
func DefaultLimits() Limits {
	return Limits{MinRadius: 2, MinShape: 5}
}

// Scene is the single owner of a physics world. It is not safe for concurrent use;
// the frame loop is the only writer.
type Scene struct {
	world   *physics.World
	limits  Limits
	running bool
}

// New returns an empty running scene of the given size.
func New(width, height float64, limits Limits) *Scene {
	return &Scene{
		world:   physics.NewWorld(width, height),
		limits:  limits,
		running: true,
	}
}

// World exposes the underlying world to renderers. Callers must not keep the slices.
func (s *Scene) World() *physics.World { return s.world }

// Bounds returns the walls.
func (s *Scene) Bounds() r2.Rect { return s.world.Bounds }

// Limits returns the size thresholds in use.
func (s *Scene) Limits() Limits { return s.limits }

// SetMaxStep changes the per-tick dt cap.
func (s *Scene) SetMaxStep(v float64) {
	if v > 0 {
		s.world.MaxStep = v
	}
}

func (s *Scene) Running() bool { return s.running }
func (s *Scene) Pause()        { s.running = false }
func (s *Scene) Resume()       { s.running = true }
func (s *Scene) Toggle()       { s.running = !s.running }

// Tick advances the scene by one frame. dtRaw is capped and ignored while paused.
func (s *Scene) Tick(dtRaw float64) physics.StepStats {
	return s.world.Tick(dtRaw, s.running)
}

// Advance runs total seconds in capped sub-steps whether or not the scene is running.
// It backs explicit single-stepping and headless runs.
func (s *Scene) Advance(total float64) physics.StepStats {
	return s.world.Advance(total)
}

// Bodies returns the live bodies in insertion order.
func (s *Scene) Bodies() []*physics.Body { return s.world.Bodies }

// Obstacles returns the live obstacles in resolution order.
func (s *Scene) Obstacles() []*physics.Obstacle { return s.world.Obstacles }

// Launch adds a body at pos moving with vel.
func (s *Scene) Launch(pos, vel r2.Point, radius float64, color string) (uuid.UUID, error) {
	if err := s.checkBody(pos, vel, radius); err != nil {
		return uuid.Nil, err
	}
	b := physics.NewBody(pos, vel, radius, color)
	s.world.AddBody(b)
	return b.ID, nil
}

func (s *Scene) checkBody(pos, vel r2.Point, radius float64) error {
	if !geom.Finite(pos) || !geom.Finite(vel) || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return ErrInvalid
	}
	if radius < s.limits.MinRadius {
		return ErrTooSmall
	}
	return nil
}

// AddObstacle validates shape against the limits and appends it after the existing obstacles.
func (s *Scene) AddObstacle(shape physics.Shape, color string) (uuid.UUID, error) {
	if err := s.Validate(shape); err != nil {
		return uuid.Nil, err
	}
	o := physics.NewObstacle(shape, color)
	s.world.AddObstacle(o)
	return o.ID, nil
}

// Validate reports whether shape is acceptable as a new obstacle.
func (s *Scene) Validate(shape physics.Shape) error {
	if shape == nil {
		return ErrInvalid
	}
	b := shape.Bounds()
	if !geom.Finite(b.Lo()) || !geom.Finite(b.Hi()) {
		return ErrInvalid
	}
	switch sh := shape.(type) {
	case physics.Segment:
		if sh.Length() < s.limits.MinShape {
			return ErrTooSmall
		}
	case physics.Rect:
		if math.Abs(sh.W) < s.limits.MinShape || math.Abs(sh.H) < s.limits.MinShape {
			return ErrTooSmall
		}
	case physics.Circle:
		if sh.R < s.limits.MinRadius {
			return ErrTooSmall
		}
	case physics.Triangle:
		// A sliver with almost no area is drawn as a line and should be one.
		if sh.Area() < s.limits.MinShape*s.limits.MinShape/2 {
			return ErrTooSmall
		}
	}
	return nil
}

// Body returns the body with id.
func (s *Scene) Body(id uuid.UUID) (*physics.Body, bool) {
	for _, b := range s.world.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Obstacle returns the obstacle with id.
func (s *Scene) Obstacle(id uuid.UUID) (*physics.Obstacle, bool) {
	for _, o := range s.world.Obstacles {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// MoveBody places a body at pos and keeps its velocity.
func (s *Scene) MoveBody(id uuid.UUID, pos r2.Point) error {
	if !geom.Finite(pos) {
		return ErrInvalid
	}
	b, ok := s.Body(id)
	if !ok {
		return ErrNotFound
	}
	b.Pos = pos
	return nil
}

// SetVelocity replaces a body's velocity.
func (s *Scene) SetVelocity(id uuid.UUID, vel r2.Point) error {
	if !geom.Finite(vel) {
		return ErrInvalid
	}
	b, ok := s.Body(id)
	if !ok {
		return ErrNotFound
	}
	b.Vel = vel
	return nil
}

// MoveObstacle translates an obstacle by d. Obstacles only move between ticks.
func (s *Scene) MoveObstacle(id uuid.UUID, d r2.Point) error {
	if !geom.Finite(d) {
		return ErrInvalid
	}
	o, ok := s.Obstacle(id)
	if !ok {
		return ErrNotFound
	}
	o.Shape = o.Shape.Translate(d)
	return nil
}

// Move moves whichever entity has id: bodies jump to their position plus d, obstacles translate.
func (s *Scene) Move(id uuid.UUID, d r2.Point) error {
	if b, ok := s.Body(id); ok {
		return s.MoveBody(id, b.Pos.Add(d))
	}
	return s.MoveObstacle(id, d)
}

// Delete removes the body or obstacle with id.
func (s *Scene) Delete(id uuid.UUID) error {
	if s.world.RemoveBody(id) || s.world.RemoveObstacle(id) {
		return nil
	}
	return ErrNotFound
}

// Clear removes everything. The running flag is unchanged.
func (s *Scene) Clear() {
	s.world.Clear()
}

// HitTest returns the topmost entity under p. Bodies are drawn over obstacles, and later
// entities over earlier ones, so the search runs in reverse draw order.
func (s *Scene) HitTest(p r2.Point, slop float64) (uuid.UUID, bool) {
	bodies := s.world.Bodies
	for i := len(bodies) - 1; i >= 0; i-- {
		b := bodies[i]
		if geom.Distance(p, b.Pos) <= b.Radius+slop {
			return b.ID, true
		}
	}
	obstacles := s.world.Obstacles
	for i := len(obstacles) - 1; i >= 0; i-- {
		if obstacles[i].Shape.Hit(p, slop) {
			return obstacles[i].ID, true
		}
	}
	return uuid.Nil, false
}

// Snapshot is a detached copy of the scene's entities.
type Snapshot struct {
	Bodies    []physics.Body
	Obstacles []physics.Obstacle
}

// Snapshot copies the current entities. Shapes are value types so the copy shares nothing
// with the live world.
func (s *Scene) Snapshot() Snapshot {
	var snap Snapshot
	// Copy only fails on mismatched types, which these are not.
	_ = copier.Copy(&snap.Bodies, s.world.Bodies)
	_ = copier.Copy(&snap.Obstacles, s.world.Obstacles)
	return snap
}

// Restore replaces every entity with fresh copies of those in snap.
func (s *Scene) Restore(snap Snapshot) error {
	var bodies []*physics.Body
	var obstacles []*physics.Obstacle
	if err := copier.Copy(&bodies, snap.Bodies); err != nil {
		return err
	}
	if err := copier.Copy(&obstacles, snap.Obstacles); err != nil {
		return err
	}
	s.world.Bodies = bodies
	s.world.Obstacles = obstacles
	return nil
}

// Len returns the number of bodies and obstacles.
func (s *Scene) Len() (bodies, obstacles int) {
	return len(s.world.Bodies), len(s.world.Obstacles)
}
