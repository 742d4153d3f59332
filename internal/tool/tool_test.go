package tool

import (
	"testing"

	"toybox/internal/palette"
	"toybox/internal/physics"
	"toybox/internal/scene"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func newController(t *testing.T) *Controller {
	t.Helper()
	p, err := palette.New([]string{"#e63946"})
	require.NoError(t, err)
	return New(scene.New(400, 400, scene.DefaultLimits()), p)
}

func gesture(t *testing.T, c *Controller, from, to r2.Point) (uuid.UUID, error) {
	t.Helper()
	require.NoError(t, c.Press(from))
	require.NoError(t, c.Drag(from.Add(to).Mul(0.5)))
	return c.Release(to)
}

func TestLaunchIsSlingshot(t *testing.T) {
	c := newController(t)
	id, err := gesture(t, c, pt(100, 100), pt(80, 110))
	require.NoError(t, err)

	b, ok := c.Scene.Body(id)
	require.True(t, ok)
	assert.Equal(t, pt(100, 100), b.Pos)
	assert.Equal(t, pt(60, -30), b.Vel)
	assert.Equal(t, "#e63946", b.Color)
	assert.Equal(t, float64(physics.DefaultRadius), b.Radius)
}

func TestClickLaunchesAtRest(t *testing.T) {
	c := newController(t)
	id, err := gesture(t, c, pt(50, 50), pt(50, 50))
	require.NoError(t, err)
	b, _ := c.Scene.Body(id)
	assert.Zero(t, b.Speed())
}

func TestShapeTools(t *testing.T) {
	tests := []struct {
		tool Tool
		want physics.Shape
	}{
		{Line, physics.Segment{A: pt(10, 10), B: pt(50, 40)}},
		{Rect, physics.Rect{X: 10, Y: 10, W: 40, H: 30}},
		{Circle, physics.Circle{Center: pt(10, 10), R: 50}},
		{Triangle, physics.Triangle{A: pt(10, 40), B: pt(50, 40), C: pt(30, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.tool.String(), func(t *testing.T) {
			c := newController(t)
			c.Select(tt.tool)
			id, err := gesture(t, c, pt(10, 10), pt(50, 40))
			require.NoError(t, err)
			o, ok := c.Scene.Obstacle(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, o.Shape)
		})
	}
}

func TestTinyGesturesAreRejected(t *testing.T) {
	for _, tl := range []Tool{Line, Rect, Circle, Triangle} {
		c := newController(t)
		c.Select(tl)
		_, err := gesture(t, c, pt(10, 10), pt(11, 11))
		assert.ErrorIs(t, err, scene.ErrTooSmall, tl.String())
		_, obstacles := c.Scene.Len()
		assert.Zero(t, obstacles, tl.String())
	}
}

func TestMoveDragsEntity(t *testing.T) {
	c := newController(t)
	c.Select(Circle)
	id, err := gesture(t, c, pt(100, 100), pt(120, 100))
	require.NoError(t, err)

	c.Select(Move)
	require.NoError(t, c.Press(pt(105, 100)))
	require.NoError(t, c.Drag(pt(115, 110)))
	_, err = c.Release(pt(125, 120))
	require.NoError(t, err)

	o, _ := c.Scene.Obstacle(id)
	assert.Equal(t, physics.Circle{Center: pt(120, 120), R: 20}, o.Shape)
}

func TestMoveOnEmptySpaceDoesNothing(t *testing.T) {
	c := newController(t)
	c.Select(Move)
	require.NoError(t, c.Press(pt(5, 5)))
	_, _, active := c.Active()
	assert.False(t, active)
}

func TestDeleteRemovesTopmost(t *testing.T) {
	c := newController(t)
	_, err := gesture(t, c, pt(100, 100), pt(100, 100))
	require.NoError(t, err)

	c.Select(Delete)
	require.NoError(t, c.Press(pt(102, 100)))
	bodies, _ := c.Scene.Len()
	assert.Zero(t, bodies)
	require.NoError(t, c.Press(pt(300, 300)), "pressing empty space is fine")
}

func TestSelectCancelsGesture(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Press(pt(10, 10)))
	c.Select(Line)
	id, err := c.Release(pt(90, 90))
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
	bodies, obstacles := c.Scene.Len()
	assert.Zero(t, bodies+obstacles)
}

func TestParseTool(t *testing.T) {
	for _, tl := range All() {
		got, err := Parse(tl.String())
		require.NoError(t, err)
		assert.Equal(t, tl, got)
	}
	_, err := Parse("lasso")
	assert.Error(t, err)
}
