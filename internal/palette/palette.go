// Package palette turns the hex colour strings carried by entities into render colours
// and hands out colours for new entities in rotation.
package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback is used for entities whose colour is empty or does not parse.
var Fallback = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}

// Palette cycles through a fixed list of colours.
type Palette struct {
	colors []string
	next   int
}

// New validates every entry. An empty list yields a palette that always returns "".
func New(hexes []string) (*Palette, error) {
	for _, h := range hexes {
		if _, err := colorful.Hex(h); err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
	}
	out := make([]string, len(hexes))
	copy(out, hexes)
	return &Palette{colors: out}, nil
}

// Next returns the next colour, wrapping around.
func (p *Palette) Next() string {
	if len(p.colors) == 0 {
		return ""
	}
	c := p.colors[p.next%len(p.colors)]
	p.next++
	return c
}

// Colors returns the entries in order.
func (p *Palette) Colors() []string {
	out := make([]string, len(p.colors))
	copy(out, p.colors)
	return out
}

// RGBA parses a "#rgb" or "#rrggbb" string into an opaque colour, or Fallback.
func RGBA(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Tint blends hex toward white by t in Lab space; used for previews and trails.
func Tint(hex string, t float64) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.MakeColor(Fallback)
	}
	r, g, b := c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
