// Package sim runs the sandbox without a window: seed a scene, run sandbox commands,
// advance time, then report, render and store the result.
package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"toybox/internal/commands"
	"toybox/internal/palette"
	"toybox/internal/physics"
	"toybox/internal/preset"
	"toybox/internal/raster"
	"toybox/internal/scene"
	"toybox/internal/store"
)

// Options describes one headless run. Steps happen in field order.
type Options struct {
	// Preset is a preset file or builtin name. Exclusive with Load.
	Preset string
	// Load starts from the stored snapshot.
	Load bool
	// Exec lines run first, then Script.
	Exec       []string
	Script     io.Reader
	ScriptName string
	// Duration is simulated seconds advanced after the commands, at most
	// physics.MaxAdvance.
	Duration float64
	// PNG, when set, is where the final scene is rendered.
	PNG string
	// Save stores the final scene as the snapshot.
	Save bool
}

// Summary totals a run.
type Summary struct {
	Seconds    float64 `json:"seconds"`
	Bounces    int     `json:"bounces"`
	Collisions int     `json:"collisions"`
	Bodies     int     `json:"bodies"`
	Obstacles  int     `json:"obstacles"`
}

// Runner holds what a run works against.
type Runner struct {
	Scene      *scene.Scene
	Store      store.Store
	Palette    *palette.Palette
	BodyRadius float64
	Log        *slog.Logger
	// Out receives command output. Nil discards it.
	Out io.Writer
	// Observe, when set, sees every step the run takes.
	Observe func(physics.StepStats)
}

// Run executes opts against the runner's scene.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	switch {
	case !(opts.Duration >= 0):
		return Summary{}, fmt.Errorf("sim: duration must not be negative")
	case opts.Duration > physics.MaxAdvance:
		return Summary{}, fmt.Errorf("sim: duration %g exceeds the %gs limit", opts.Duration, physics.MaxAdvance)
	}
	if opts.Preset != "" && opts.Load {
		return Summary{}, fmt.Errorf("sim: preset and load are exclusive")
	}
	if r.Log == nil {
		r.Log = slog.New(slog.DiscardHandler)
	}
	s := r.Scene

	switch {
	case opts.Preset != "":
		p, err := preset.Resolve(opts.Preset)
		if err != nil {
			return Summary{}, err
		}
		if err := p.Apply(s); err != nil {
			return Summary{}, err
		}
	case opts.Load:
		if err := s.Load(ctx, r.Store, r.Log); err != nil {
			return Summary{}, err
		}
	}

	var total physics.StepStats
	observe := func(st physics.StepStats) {
		total.Add(st)
		if r.Observe != nil {
			r.Observe(st)
		}
	}
	reg := commands.NewSandbox(ctx, &commands.Target{
		Scene:      s,
		Store:      r.Store,
		Palette:    r.Palette,
		BodyRadius: r.BodyRadius,
		Observe:    observe,
		Log:        r.Log,
		Out:        r.Out,
	})

	for _, line := range opts.Exec {
		if err := reg.ExecuteLine(line); err != nil {
			return Summary{}, fmt.Errorf("exec %q: %w", line, err)
		}
	}
	if opts.Script != nil {
		if err := reg.RunScript(opts.Script); err != nil {
			return Summary{}, fmt.Errorf("script %s: %w", opts.ScriptName, err)
		}
	}
	if opts.Duration > 0 {
		observe(s.Advance(opts.Duration))
	}

	if opts.PNG != "" {
		b := s.Bounds()
		img := raster.Scene(s.Snapshot(), int(b.X.Hi), int(b.Y.Hi), raster.DefaultOptions())
		if err := raster.WritePNG(opts.PNG, img); err != nil {
			return Summary{}, err
		}
		r.Log.Info("scene rendered", "png", opts.PNG)
	}
	if opts.Save {
		if err := s.Save(ctx, r.Store); err != nil {
			return Summary{}, err
		}
		r.Log.Info("scene saved", "key", scene.SnapshotKey)
	}

	bodies, obstacles := s.Len()
	return Summary{
		Seconds:    total.Dt,
		Bounces:    total.Bounces,
		Collisions: total.Collisions,
		Bodies:     bodies,
		Obstacles:  obstacles,
	}, nil
}

// Write prints sum as one line, or as indented JSON.
func (sum Summary) Write(out io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	_, err := fmt.Fprintf(out, "simulated %.3fs: bounces=%d collisions=%d bodies=%d shapes=%d\n",
		sum.Seconds, sum.Bounces, sum.Collisions, sum.Bodies, sum.Obstacles)
	return err
}
