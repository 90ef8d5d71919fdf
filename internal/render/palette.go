package render

import (
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
)

const paletteSize = 256

// DefaultHeightRange is the height mapped to the ends of the palette.
const DefaultHeightRange = 0.5

// HeightPalette maps signed heights to a diverging hue ramp: troughs blue,
// rest white, crests red.
type HeightPalette struct {
	table []color.RGBA
	rng   float64
}

// NewHeightPalette builds the lookup table. Heights beyond ±rng saturate.
func NewHeightPalette(rng float64) *HeightPalette {
	if !(rng > 0) {
		rng = DefaultHeightRange
	}
	p := &HeightPalette{table: make([]color.RGBA, paletteSize), rng: rng}
	for i := range p.table {
		t := float64(i) / float64(paletteSize-1)
		hue := 240 * (1 - t)
		sat := math.Abs(2*t - 1)
		r, g, b, err := colorconv.HSVToRGB(hue, sat, 1)
		if err != nil {
			r, g, b = 128, 128, 128
		}
		p.table[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return p
}

// Range returns the saturating height.
func (p *HeightPalette) Range() float64 { return p.rng }

// At returns the colour for height h.
func (p *HeightPalette) At(h float64) color.RGBA {
	t := (h/p.rng + 1) / 2
	if t < 0 || math.IsNaN(t) {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p.table[int(math.Round(t*float64(paletteSize-1)))]
}
