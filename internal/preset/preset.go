// Package preset reads sandbox layouts from YAML files and reloads them on change.
package preset

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"toybox/internal/physics"
	"toybox/internal/scene"

	"github.com/golang/geo/r2"
	"gopkg.in/yaml.v3"
)

// Preset is a named layout of bodies and obstacles.
type Preset struct {
	Name   string  `yaml:"name"`
	Bodies []Body  `yaml:"bodies"`
	Shapes []Shape `yaml:"shapes"`
}

// Body is one launched ball.
type Body struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	VX    float64 `yaml:"vx"`
	VY    float64 `yaml:"vy"`
	R     float64 `yaml:"r"`
	Color string  `yaml:"color"`
}

// Shape holds exactly one of the geometry lists.
type Shape struct {
	Line     []float64 `yaml:"line,omitempty"`
	Rect     []float64 `yaml:"rect,omitempty"`
	Circle   []float64 `yaml:"circle,omitempty"`
	Triangle []float64 `yaml:"triangle,omitempty"`
	Color    string    `yaml:"color,omitempty"`
}

// Geometry converts the YAML entry into a physics shape.
func (s Shape) Geometry() (physics.Shape, error) {
	set := 0
	for _, l := range [][]float64{s.Line, s.Rect, s.Circle, s.Triangle} {
		if l != nil {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("want exactly one of line, rect, circle, triangle; got %d", set)
	}
	p := func(v []float64, i int) r2.Point { return r2.Point{X: v[i], Y: v[i+1]} }
	switch {
	case s.Line != nil:
		if len(s.Line) != 4 {
			return nil, fmt.Errorf("line wants 4 numbers, got %d", len(s.Line))
		}
		return physics.Segment{A: p(s.Line, 0), B: p(s.Line, 2)}, nil
	case s.Rect != nil:
		if len(s.Rect) != 4 {
			return nil, fmt.Errorf("rect wants 4 numbers, got %d", len(s.Rect))
		}
		return physics.Rect{X: s.Rect[0], Y: s.Rect[1], W: s.Rect[2], H: s.Rect[3]}, nil
	case s.Circle != nil:
		if len(s.Circle) != 3 {
			return nil, fmt.Errorf("circle wants 3 numbers, got %d", len(s.Circle))
		}
		return physics.Circle{Center: p(s.Circle, 0), R: s.Circle[2]}, nil
	default:
		if len(s.Triangle) != 6 {
			return nil, fmt.Errorf("triangle wants 6 numbers, got %d", len(s.Triangle))
		}
		return physics.Triangle{A: p(s.Triangle, 0), B: p(s.Triangle, 2), C: p(s.Triangle, 4)}, nil
	}
}

// Parse decodes a preset document. Unknown keys are an error so typos surface.
func Parse(data []byte) (*Preset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Preset
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	for i, s := range p.Shapes {
		if _, err := s.Geometry(); err != nil {
			return nil, fmt.Errorf("preset: shape %d: %w", i, err)
		}
	}
	return &p, nil
}

// Load reads a preset file.
func Load(file string) (*Preset, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return Parse(data)
}

// Apply replaces the scene's entities with the preset's. The scene is left unchanged
// when any entity is rejected.
func (p *Preset) Apply(s *scene.Scene) error {
	staged := scene.New(s.Bounds().X.Hi, s.Bounds().Y.Hi, s.Limits())
	for i, b := range p.Bodies {
		r := b.R
		if r == 0 {
			r = physics.DefaultRadius
		}
		if _, err := staged.Launch(r2.Point{X: b.X, Y: b.Y}, r2.Point{X: b.VX, Y: b.VY}, r, b.Color); err != nil {
			return fmt.Errorf("preset %s: body %d: %w", p.Name, i, err)
		}
	}
	for i, sh := range p.Shapes {
		g, err := sh.Geometry()
		if err != nil {
			return fmt.Errorf("preset %s: shape %d: %w", p.Name, i, err)
		}
		if _, err := staged.AddObstacle(g, sh.Color); err != nil {
			return fmt.Errorf("preset %s: shape %d: %w", p.Name, i, err)
		}
	}
	return s.Restore(staged.Snapshot())
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns one of the presets shipped with the binary.
func Builtin(name string) (*Preset, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("preset: no builtin %q", name)
	}
	return Parse(data)
}

// BuiltinNames lists the shipped presets.
func BuiltinNames() []string {
	entries, _ := builtinFS.ReadDir("builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Resolve loads name as a file when it exists on disk and as a builtin otherwise.
func Resolve(name string) (*Preset, error) {
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}
	return Builtin(name)
}
