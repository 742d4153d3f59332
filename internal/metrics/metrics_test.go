package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"toybox/internal/physics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(physics.StepStats{Dt: 0.5, Bounces: 2, Collisions: 1}, 3, 4)
	m.Observe(physics.StepStats{Dt: 0.25, Collisions: 2}, 3, 5)
	m.Observe(physics.StepStats{}, 2, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.simSeconds))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bounces))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.collisions))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bodies))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.obstacles))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe(physics.StepStats{Dt: 0.1, Bounces: 1}, 1, 0)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "toybox_ticks_total 1")
	assert.Contains(t, string(body), "toybox_wall_bounces_total 1")
	assert.Contains(t, string(body), "toybox_bodies 1")
}
