package scene

import (
	"math"
	"testing"

	"toybox/internal/physics"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func newScene() *Scene {
	return New(200, 200, DefaultLimits())
}

func TestLaunchAndTick(t *testing.T) {
	s := newScene()
	id, err := s.Launch(pt(50, 50), pt(100, 0), 10, "#ff0000")
	require.NoError(t, err)

	stats := s.Tick(1.0)
	assert.InDelta(t, physics.MaxStep, stats.Dt, 1e-12)

	b, ok := s.Body(id)
	require.True(t, ok)
	assert.InDelta(t, 50+100*physics.MaxStep, b.Pos.X, 1e-9)
	assert.Equal(t, "#ff0000", b.Color)
}

func TestLaunchRejects(t *testing.T) {
	s := newScene()
	_, err := s.Launch(pt(50, 50), pt(0, 0), 1, "")
	assert.ErrorIs(t, err, ErrTooSmall)
	_, err = s.Launch(pt(math.NaN(), 50), pt(0, 0), 10, "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = s.Launch(pt(50, 50), pt(math.Inf(1), 0), 10, "")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, s.Bodies())
}

func TestPauseFreezes(t *testing.T) {
	s := newScene()
	id, err := s.Launch(pt(50, 50), pt(100, 0), 10, "")
	require.NoError(t, err)

	s.Pause()
	assert.False(t, s.Running())
	s.Tick(0.016)
	b, _ := s.Body(id)
	assert.Equal(t, 50.0, b.Pos.X)

	s.Advance(0.1)
	assert.InDelta(t, 60, b.Pos.X, 1e-9, "explicit steps run while paused")

	s.Toggle()
	assert.True(t, s.Running())
}

func TestAddObstacleValidates(t *testing.T) {
	tests := []struct {
		name  string
		shape physics.Shape
		err   error
	}{
		{"segment", physics.Segment{A: pt(0, 0), B: pt(50, 0)}, nil},
		{"short segment", physics.Segment{A: pt(0, 0), B: pt(1, 1)}, ErrTooSmall},
		{"rect", physics.Rect{X: 10, Y: 10, W: -30, H: 20}, nil},
		{"flat rect", physics.Rect{X: 10, Y: 10, W: 30, H: 2}, ErrTooSmall},
		{"circle", physics.Circle{Center: pt(50, 50), R: 10}, nil},
		{"tiny circle", physics.Circle{Center: pt(50, 50), R: 1}, ErrTooSmall},
		{"triangle", physics.Triangle{A: pt(0, 0), B: pt(40, 0), C: pt(20, 30)}, nil},
		{"sliver", physics.Triangle{A: pt(0, 0), B: pt(40, 0), C: pt(20, 0.1)}, ErrTooSmall},
		{"nil", nil, ErrInvalid},
		{"nan", physics.Circle{Center: pt(math.NaN(), 0), R: 10}, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene()
			id, err := s.AddObstacle(tt.shape, "#000")
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, s.Obstacles())
				return
			}
			require.NoError(t, err)
			_, ok := s.Obstacle(id)
			assert.True(t, ok)
		})
	}
}

func TestMoveAndDelete(t *testing.T) {
	s := newScene()
	bid, err := s.Launch(pt(50, 50), pt(10, 0), 10, "")
	require.NoError(t, err)
	oid, err := s.AddObstacle(physics.Circle{Center: pt(100, 100), R: 10}, "")
	require.NoError(t, err)

	require.NoError(t, s.MoveBody(bid, pt(70, 80)))
	b, _ := s.Body(bid)
	assert.Equal(t, pt(70, 80), b.Pos)
	assert.Equal(t, pt(10, 0), b.Vel, "moving keeps velocity")

	require.NoError(t, s.MoveObstacle(oid, pt(5, -5)))
	o, _ := s.Obstacle(oid)
	assert.Equal(t, physics.Circle{Center: pt(105, 95), R: 10}, o.Shape)

	require.NoError(t, s.Move(bid, pt(1, 1)))
	assert.Equal(t, pt(71, 81), b.Pos)

	require.NoError(t, s.SetVelocity(bid, pt(0, -5)))
	assert.Equal(t, pt(0, -5), b.Vel)

	assert.ErrorIs(t, s.MoveBody(uuid.New(), pt(0, 0)), ErrNotFound)
	assert.ErrorIs(t, s.MoveObstacle(uuid.New(), pt(0, 0)), ErrNotFound)

	require.NoError(t, s.Delete(bid))
	require.NoError(t, s.Delete(oid))
	assert.ErrorIs(t, s.Delete(bid), ErrNotFound)
	bodies, obstacles := s.Len()
	assert.Zero(t, bodies)
	assert.Zero(t, obstacles)
}

func TestHitTestPrefersTopmost(t *testing.T) {
	s := newScene()
	under, err := s.AddObstacle(physics.Rect{X: 0, Y: 0, W: 100, H: 100}, "")
	require.NoError(t, err)
	over, err := s.AddObstacle(physics.Circle{Center: pt(50, 50), R: 20}, "")
	require.NoError(t, err)
	ball, err := s.Launch(pt(50, 50), pt(0, 0), 5, "")
	require.NoError(t, err)

	id, ok := s.HitTest(pt(50, 50), 0)
	require.True(t, ok)
	assert.Equal(t, ball, id)

	id, ok = s.HitTest(pt(60, 50), 0)
	require.True(t, ok)
	assert.Equal(t, over, id)

	id, ok = s.HitTest(pt(90, 90), 0)
	require.True(t, ok)
	assert.Equal(t, under, id)

	_, ok = s.HitTest(pt(150, 150), 0)
	assert.False(t, ok)
}

func TestClearKeepsRunningFlag(t *testing.T) {
	s := newScene()
	_, err := s.Launch(pt(50, 50), pt(0, 0), 5, "")
	require.NoError(t, err)
	s.Pause()
	s.Clear()
	assert.Empty(t, s.Bodies())
	assert.False(t, s.Running())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newScene()
	id, err := s.Launch(pt(50, 50), pt(100, 0), 10, "")
	require.NoError(t, err)
	_, err = s.AddObstacle(physics.Segment{A: pt(0, 150), B: pt(200, 150)}, "")
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Bodies, 1)
	require.Len(t, snap.Obstacles, 1)

	s.Tick(0.016)
	assert.Equal(t, 50.0, snap.Bodies[0].Pos.X, "snapshot does not follow the live body")

	require.NoError(t, s.Restore(snap))
	b, ok := s.Body(id)
	require.True(t, ok)
	assert.Equal(t, 50.0, b.Pos.X)

	b.Pos.X = 10
	assert.Equal(t, 50.0, snap.Bodies[0].Pos.X, "restored bodies are fresh copies")
}
