package scene

import (
	"context"
	"encoding/json"
	"testing"

	"toybox/internal/physics"
	"toybox/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *Scene {
	t.Helper()
	s := newScene()
	_, err := s.Launch(pt(50, 60), pt(-20, 30), 8, "#e63946")
	require.NoError(t, err)
	shapes := []physics.Shape{
		physics.Segment{A: pt(0, 150), B: pt(200, 180)},
		physics.Rect{X: 20, Y: 20, W: 40, H: 30},
		physics.Circle{Center: pt(120, 80), R: 15},
		physics.Triangle{A: pt(100, 150), B: pt(160, 150), C: pt(130, 110)},
	}
	for _, sh := range shapes {
		_, err := s.AddObstacle(sh, "#457b9d")
		require.NoError(t, err)
	}
	return s
}

func TestEncodeDecode(t *testing.T) {
	s := populated(t)
	data, err := Encode(s.Snapshot())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, SnapshotVersion, raw["version"])

	snap, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), snap)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "not json"},
		{"unknown kind", `{"version":1,"shapes":[{"kind":"hexagon"}]}`},
		{"short triangle", `{"version":1,"shapes":[{"kind":"triangle","points":[[0,0],[1,1]]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := Decode([]byte(`{"version":7,"bodies":[]}`))
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestDecodeFillsIDsAndRadius(t *testing.T) {
	snap, err := Decode([]byte(`{"version":1,"bodies":[{"x":1,"y":2,"vx":3,"vy":4}]}`))
	require.NoError(t, err)
	require.Len(t, snap.Bodies, 1)
	b := snap.Bodies[0]
	assert.NotZero(t, b.ID)
	assert.Equal(t, float64(physics.DefaultRadius), b.Radius)
	assert.Equal(t, pt(3, 4), b.Vel)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := populated(t)
	require.NoError(t, s.Save(ctx, st))

	restored := newScene()
	require.NoError(t, restored.Load(ctx, st, nil))
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := populated(t)
	require.NoError(t, s.Load(context.Background(), store.NewMemoryStore(), nil))
	assert.Empty(t, s.Bodies())
	assert.Empty(t, s.Obstacles())
}

func TestLoadCorruptIsDiscarded(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, SnapshotKey, []byte(`{"version":1,"shapes":[{"kind":`)))

	s := populated(t)
	require.NoError(t, s.Load(ctx, st, nil))
	assert.Empty(t, s.Bodies())
	assert.Empty(t, s.Obstacles())
}

func TestLoadRejectsEntitiesBelowLimits(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"tiny body", `{"version":1,"bodies":[{"x":50,"y":50,"r":1}]}`},
		{"flat triangle", `{"version":1,"shapes":[{"kind":"triangle","points":[[0,0],[50,0],[100,0]]}]}`},
		{"short segment", `{"version":1,"shapes":[{"kind":"line","x1":10,"y1":10,"x2":11,"y2":10}]}`},
		{"tiny circle", `{"version":1,"shapes":[{"kind":"circle","x":50,"y":50,"r":0.5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st := store.NewMemoryStore()
			require.NoError(t, st.Put(ctx, SnapshotKey, []byte(tt.blob)))

			s := populated(t)
			require.NoError(t, s.Load(ctx, st, nil))
			assert.Empty(t, s.Bodies())
			assert.Empty(t, s.Obstacles())
		})
	}
}

func TestLoadReassignsDuplicateIDs(t *testing.T) {
	const id = "6f1c1f3e-3c7a-4d52-9a57-2b1f0c8e9d10"
	blob := `{"version":1,
		"bodies":[{"id":"` + id + `","x":50,"y":50,"r":5},{"id":"` + id + `","x":80,"y":80,"r":5}],
		"shapes":[{"id":"` + id + `","kind":"circle","x":150,"y":150,"r":10}]}`
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, SnapshotKey, []byte(blob)))

	s := newScene()
	require.NoError(t, s.Load(ctx, st, nil))
	require.Len(t, s.Bodies(), 2)
	require.Len(t, s.Obstacles(), 1)

	first, second, shape := s.Bodies()[0].ID, s.Bodies()[1].ID, s.Obstacles()[0].ID
	assert.Equal(t, id, first.String(), "the first holder keeps the saved id")
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, first, shape)
	assert.NotEqual(t, second, shape)

	require.NoError(t, s.Delete(second))
	assert.Len(t, s.Bodies(), 1)
	assert.Equal(t, first, s.Bodies()[0].ID)
}
