// Package raster renders sandbox snapshots and orbit systems to images without a window,
// for thumbnails and headless runs.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"toybox/internal/orbit"
	"toybox/internal/palette"
	"toybox/internal/physics"
	"toybox/internal/scene"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/chewxy/math32"
	"github.com/golang/geo/r2"
	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution used for round shapes.
const circleSegments = 48

// Options controls how world units map onto pixels.
type Options struct {
	Background color.Color
	// Scale is pixels per world unit.
	Scale float64
	// LineWidth is the stroke width of segments and orbit paths, in pixels.
	LineWidth float64
}

// DefaultOptions draws on white at one pixel per unit.
func DefaultOptions() Options {
	return Options{Background: color.White, Scale: 1, LineWidth: 3}
}

type canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float32
	width float32
}

func newCanvas(w, h int, opts Options) *canvas {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &canvas{img: img, z: vector.NewRasterizer(w, h), scale: float32(opts.Scale), width: float32(opts.LineWidth)}
}

func (c *canvas) fill(col color.Color, pts ...[2]float32) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		c.z.LineTo(p[0], p[1])
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

func (c *canvas) pt(p r2.Point) [2]float32 {
	return [2]float32{float32(p.X) * c.scale, float32(p.Y) * c.scale}
}

// line strokes a segment in pixel space as a quad.
func (c *canvas) line(col color.Color, a, b [2]float32) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math32.Sqrt(dx*dx + dy*dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*c.width/2, dx/l*c.width/2
	c.fill(col,
		[2]float32{a[0] + nx, a[1] + ny},
		[2]float32{b[0] + nx, b[1] + ny},
		[2]float32{b[0] - nx, b[1] - ny},
		[2]float32{a[0] - nx, a[1] - ny},
	)
}

// disc fills a circle given in pixel space.
func (c *canvas) disc(col color.Color, center [2]float32, r float32) {
	pts := make([][2]float32, circleSegments)
	for i := range pts {
		theta := 2 * math32.Pi * float32(i) / circleSegments
		pts[i] = [2]float32{center[0] + r*math32.Cos(theta), center[1] + r*math32.Sin(theta)}
	}
	c.fill(col, pts...)
}

func (c *canvas) shape(col color.Color, s physics.Shape) {
	switch s := s.(type) {
	case physics.Segment:
		c.line(col, c.pt(s.A), c.pt(s.B))
	case physics.Rect:
		v := s.Bounds().Vertices()
		c.fill(col, c.pt(v[0]), c.pt(v[1]), c.pt(v[2]), c.pt(v[3]))
	case physics.Circle:
		c.disc(col, c.pt(s.Center), float32(s.R)*c.scale)
	case physics.Triangle:
		c.fill(col, c.pt(s.A), c.pt(s.B), c.pt(s.C))
	}
}

// Scene draws obstacles first and bodies on top, each in list order.
func Scene(snap scene.Snapshot, w, h int, opts Options) *image.RGBA {
	c := newCanvas(w, h, opts)
	for _, o := range snap.Obstacles {
		c.shape(palette.RGBA(o.Color), o.Shape)
	}
	for _, b := range snap.Bodies {
		c.disc(palette.RGBA(b.Color), c.pt(b.Pos), float32(b.Radius)*c.scale)
	}
	return c.img
}

// Orbits draws a top-down view of sys centred in the image: the XZ plane maps to
// pixel X and Y. Paths are drawn when segments > 0.
func Orbits(sys *orbit.System, w, h, segments int, opts Options) *image.RGBA {
	c := newCanvas(w, h, opts)
	cx, cy := float32(w)/2, float32(h)/2
	project := func(x, z float64) [2]float32 {
		return [2]float32{cx + float32(x)*c.scale, cy + float32(z)*c.scale}
	}
	if segments > 0 {
		for _, b := range sys.Bodies {
			path := b.Path(segments)
			col := palette.Tint(b.Color, 0.6)
			for i := 1; i < len(path); i++ {
				c.line(col, project(path[i-1].X(), path[i-1].Z()), project(path[i].X(), path[i].Z()))
			}
		}
	}
	c.disc(palette.RGBA(orbit.SunColor), project(0, 0), orbit.SunSize*c.scale)
	for _, b := range sys.Bodies {
		p := b.Position()
		c.disc(palette.RGBA(b.Color), project(p.X(), p.Z()), max(float32(b.Size)*c.scale, 1))
	}
	return c.img
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	return imgio.Save(path, img, imgio.PNGEncoder())
}
