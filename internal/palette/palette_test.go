package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCycles(t *testing.T) {
	p, err := New([]string{"#ff0000", "#00f"})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", p.Next())
	assert.Equal(t, "#00f", p.Next())
	assert.Equal(t, "#ff0000", p.Next())
}

func TestNewRejectsBadHex(t *testing.T) {
	_, err := New([]string{"#ff0000", "red"})
	assert.Error(t, err)
}

func TestEmptyPalette(t *testing.T) {
	p, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, "", p.Next())
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff}, RGBA("#e63946"))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, RGBA("#fff"))
	assert.Equal(t, Fallback, RGBA(""))
	assert.Equal(t, Fallback, RGBA("blue"))
}

func TestTint(t *testing.T) {
	assert.Equal(t, RGBA("#e63946"), Tint("#e63946", 0))
	white := Tint("#e63946", 1)
	assert.InDelta(t, 255, int(white.R), 1)
	assert.InDelta(t, 255, int(white.G), 1)
	assert.InDelta(t, 255, int(white.B), 1)
}
