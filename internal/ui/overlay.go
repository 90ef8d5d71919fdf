//go:build ebiten

package ui

import (
	"image/color"
	"math"
	"strings"

	"ripple/internal/render"
	"ripple/internal/sims/water"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	insetSide   = 160.0
	insetMargin = 8.0
	markerArm   = 7.0
)

// Overlay draws optional debugging visuals on top of the surface.
type Overlay struct {
	state   overlayState
	palette *render.HeightPalette
	inset   *render.HeightmapPainter
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for an n×n field.
func NewOverlay(palette *render.HeightPalette, n int) *Overlay {
	o := &Overlay{palette: palette, inset: render.NewHeightmapPainter(n)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.state.toggle(showStats)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.state.toggle(falseColour)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.state.toggle(showMap)
	}
}

// FalseColour reports whether the surface should use the height palette.
func (o *Overlay) FalseColour() bool { return o.state.has(falseColour) }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, stats Stats, cells []water.Cell, marker Marker) {
	if o.state.has(showStats) {
		ebitenutil.DebugPrint(screen, strings.Join(stats.Lines(), "\n"))
		if marker.OK {
			o.drawMarker(screen, marker.X, marker.Y)
		}
	}
	if o.state.has(showMap) {
		w := float64(screen.Bounds().Dx())
		o.drawPoint(screen, w-insetMargin-insetSide/2, insetMargin+insetSide/2, insetSide+2, color.RGBA{R: 20, G: 20, B: 24, A: 200})
		o.inset.Blit(screen, cells, o.palette, w-insetMargin-insetSide, insetMargin, insetSide)
	}
}

func (o *Overlay) drawMarker(screen *ebiten.Image, x, y float64) {
	col := color.RGBA{R: 0, G: 68, B: 119, A: 220}
	o.drawLine(screen, x-markerArm, y, x+markerArm, y, 1.5, col)
	o.drawLine(screen, x, y-markerArm, x, y+markerArm, 1.5, col)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
