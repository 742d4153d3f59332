// Package metrics exposes simulation counters in the Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"toybox/internal/physics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the sandbox collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	ticks      prometheus.Counter
	simSeconds prometheus.Counter
	bounces    prometheus.Counter
	collisions prometheus.Counter
	bodies     prometheus.Gauge
	obstacles  prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toybox_ticks_total",
			Help: "Simulation steps that advanced time.",
		}),
		simSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toybox_sim_seconds_total",
			Help: "Simulated seconds.",
		}),
		bounces: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toybox_wall_bounces_total",
			Help: "Wall contacts that clamped a body.",
		}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "toybox_collisions_total",
			Help: "Obstacle contacts that changed a body's velocity.",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "toybox_bodies",
			Help: "Bodies in the scene.",
		}),
		obstacles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "toybox_obstacles",
			Help: "Obstacles in the scene.",
		}),
	}
	m.Registry.MustRegister(m.ticks, m.simSeconds, m.bounces, m.collisions, m.bodies, m.obstacles)
	return m
}

// Observe records one tick's stats and the current entity counts. Paused ticks
// (Dt == 0) only update the gauges.
func (m *Metrics) Observe(stats physics.StepStats, bodies, obstacles int) {
	if stats.Dt > 0 {
		m.ticks.Inc()
		m.simSeconds.Add(stats.Dt)
	}
	m.bounces.Add(float64(stats.Bounces))
	m.collisions.Add(float64(stats.Collisions))
	m.bodies.Set(float64(bodies))
	m.obstacles.Set(float64(obstacles))
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	if log != nil {
		log.Info("metrics listening", "addr", addr)
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
