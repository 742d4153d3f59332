package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"toybox/internal/palette"
	"toybox/internal/physics"
	"toybox/internal/scene"
	"toybox/internal/store"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

// Target is what the sandbox commands operate on.
type Target struct {
	Scene *scene.Scene
	// Store backs save and load; nil makes both fail.
	Store store.Store
	// Palette picks colours for entities created without -color. May be nil.
	Palette *palette.Palette
	// BodyRadius is the launch radius when -r is not given.
	BodyRadius float64
	// Observe, when set, sees the stats of every step command.
	Observe func(physics.StepStats)
	Log     *slog.Logger
	Out     io.Writer

	last uuid.UUID
}

// Last returns the id of the most recently created entity.
func (t *Target) Last() uuid.UUID { return t.last }

func (t *Target) color(flagValue string) string {
	if flagValue != "" || t.Palette == nil {
		return flagValue
	}
	return t.Palette.Next()
}

func (t *Target) printf(format string, args ...any) {
	if t.Out != nil {
		fmt.Fprintf(t.Out, format, args...)
	}
}

// NewSandbox returns a registry with the sandbox commands bound to t. ctx is used for
// save and load.
func NewSandbox(ctx context.Context, t *Target) *Registry {
	if t.Out == nil {
		t.Out = io.Discard
	}
	if t.Log == nil {
		t.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := NewRegistry()

	launchFS := flag.NewFlagSet("launch", flag.ContinueOnError)
	radius := launchFS.Float64("r", 0, "body radius")
	launchColor := launchFS.String("color", "", "hex colour")
	r.Register("launch", "X Y VX VY [-r radius] [-color #rrggbb]", launchFS, func(args []string) error {
		v, err := floats(args, 4)
		if err != nil {
			return err
		}
		rad := *radius
		if rad == 0 {
			rad = t.BodyRadius
		}
		if rad == 0 {
			rad = physics.DefaultRadius
		}
		id, err := t.Scene.Launch(r2.Point{X: v[0], Y: v[1]}, r2.Point{X: v[2], Y: v[3]}, rad, t.color(*launchColor))
		return t.created("body", id, err)
	})

	shapeCmd := func(name, usage string, n int, build func(v []float64) physics.Shape) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		col := fs.String("color", "", "hex colour")
		r.Register(name, usage+" [-color #rrggbb]", fs, func(args []string) error {
			v, err := floats(args, n)
			if err != nil {
				return err
			}
			id, err := t.Scene.AddObstacle(build(v), t.color(*col))
			return t.created(name, id, err)
		})
	}
	shapeCmd("line", "X1 Y1 X2 Y2", 4, func(v []float64) physics.Shape {
		return physics.Segment{A: r2.Point{X: v[0], Y: v[1]}, B: r2.Point{X: v[2], Y: v[3]}}
	})
	shapeCmd("rect", "X Y W H", 4, func(v []float64) physics.Shape {
		return physics.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
	})
	shapeCmd("circle", "X Y R", 3, func(v []float64) physics.Shape {
		return physics.Circle{Center: r2.Point{X: v[0], Y: v[1]}, R: v[2]}
	})
	shapeCmd("triangle", "X1 Y1 X2 Y2 X3 Y3", 6, func(v []float64) physics.Shape {
		return physics.Triangle{
			A: r2.Point{X: v[0], Y: v[1]},
			B: r2.Point{X: v[2], Y: v[3]},
			C: r2.Point{X: v[4], Y: v[5]},
		}
	})

	r.Register("move", "ID|last DX DY", nil, func(args []string) error {
		if len(args) != 3 {
			return fmt.Errorf("want 3 arguments, got %d", len(args))
		}
		id, err := t.resolve(args[0])
		if err != nil {
			return err
		}
		v, err := floats(args[1:], 2)
		if err != nil {
			return err
		}
		return t.Scene.Move(id, r2.Point{X: v[0], Y: v[1]})
	})
	r.Register("velocity", "ID|last VX VY", nil, func(args []string) error {
		if len(args) != 3 {
			return fmt.Errorf("want 3 arguments, got %d", len(args))
		}
		id, err := t.resolve(args[0])
		if err != nil {
			return err
		}
		v, err := floats(args[1:], 2)
		if err != nil {
			return err
		}
		return t.Scene.SetVelocity(id, r2.Point{X: v[0], Y: v[1]})
	})
	r.Register("delete", "ID|last", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("want 1 argument, got %d", len(args))
		}
		id, err := t.resolve(args[0])
		if err != nil {
			return err
		}
		return t.Scene.Delete(id)
	})

	noArgs := func(name, usage string, fn func() error) {
		r.Register(name, usage, nil, func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("takes no arguments")
			}
			return fn()
		})
	}
	noArgs("clear", "", func() error { t.Scene.Clear(); return nil })
	noArgs("pause", "", func() error { t.Scene.Pause(); return nil })
	noArgs("resume", "", func() error { t.Scene.Resume(); return nil })
	noArgs("toggle", "", func() error { t.Scene.Toggle(); return nil })
	noArgs("save", "", func() error {
		if t.Store == nil {
			return fmt.Errorf("no store configured")
		}
		if err := t.Scene.Save(ctx, t.Store); err != nil {
			return err
		}
		bodies, obstacles := t.Scene.Len()
		t.Log.Info("scene saved", "bodies", bodies, "obstacles", obstacles)
		return nil
	})
	noArgs("load", "", func() error {
		if t.Store == nil {
			return fmt.Errorf("no store configured")
		}
		return t.Scene.Load(ctx, t.Store, t.Log)
	})
	noArgs("list", "", func() error {
		for _, b := range t.Scene.Bodies() {
			t.printf("body %s pos=(%.2f,%.2f) vel=(%.2f,%.2f) r=%g\n", b.ID, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Radius)
		}
		for _, o := range t.Scene.Obstacles() {
			t.printf("%s %s\n", o.Shape.Kind(), o.ID)
		}
		return nil
	})

	r.Register("step", "SECONDS", nil, func(args []string) error {
		v, err := floats(args, 1)
		if err != nil {
			return err
		}
		switch {
		case !(v[0] >= 0):
			return fmt.Errorf("step must not be negative")
		case v[0] > physics.MaxAdvance:
			return fmt.Errorf("step %g exceeds the %gs limit", v[0], physics.MaxAdvance)
		}
		stats := t.Scene.Advance(v[0])
		if t.Observe != nil {
			t.Observe(stats)
		}
		t.printf("stepped %.4fs bounces=%d collisions=%d\n", stats.Dt, stats.Bounces, stats.Collisions)
		return nil
	})

	r.Register("help", "", nil, func([]string) error {
		t.printf("%s", r.Help())
		return nil
	})
	return r
}

func (t *Target) created(kind string, id uuid.UUID, err error) error {
	if err != nil {
		return err
	}
	t.last = id
	t.printf("%s %s\n", kind, id)
	return nil
}

// resolve accepts "last", a full id, or an unambiguous id prefix.
func (t *Target) resolve(s string) (uuid.UUID, error) {
	if s == "last" {
		if t.last == uuid.Nil {
			return uuid.Nil, fmt.Errorf("nothing created yet")
		}
		return t.last, nil
	}
	if id, err := uuid.Parse(s); err == nil {
		return id, nil
	}
	var found []uuid.UUID
	for _, b := range t.Scene.Bodies() {
		if strings.HasPrefix(b.ID.String(), s) {
			found = append(found, b.ID)
		}
	}
	for _, o := range t.Scene.Obstacles() {
		if strings.HasPrefix(o.ID.String(), s) {
			found = append(found, o.ID)
		}
	}
	switch len(found) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: %s", scene.ErrNotFound, s)
	case 1:
		return found[0], nil
	}
	return uuid.Nil, fmt.Errorf("ambiguous id prefix %q", s)
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}
