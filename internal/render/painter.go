//go:build ebiten

package render

import (
	"image"
	"image/color"

	"ripple/internal/sims/water"

	"github.com/hajimehoshi/ebiten/v2"
)

// MeshPainter rasterizes frame batches with DrawTriangles. Vertex colours
// carry all shading, so the source is a single white texel.
type MeshPainter struct {
	white *ebiten.Image
	verts []ebiten.Vertex
	opts  ebiten.DrawTrianglesOptions
}

// NewMeshPainter allocates the shared white source image.
func NewMeshPainter() *MeshPainter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &MeshPainter{
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		opts:  ebiten.DrawTrianglesOptions{AntiAlias: true},
	}
}

// Draw clears dst to background and paints every batch.
func (p *MeshPainter) Draw(dst *ebiten.Image, batches []Batch, background color.Color) {
	dst.Fill(background)
	for _, batch := range batches {
		if len(batch.Indices) == 0 {
			continue
		}
		p.verts = p.verts[:0]
		for _, v := range batch.Vertices {
			p.verts = append(p.verts, ebiten.Vertex{
				DstX:   v.X,
				DstY:   v.Y,
				SrcX:   1,
				SrcY:   1,
				ColorR: v.R,
				ColorG: v.G,
				ColorB: v.B,
				ColorA: v.A,
			})
		}
		dst.DrawTriangles(p.verts, batch.Indices, p.white, &p.opts)
	}
}

// HeightmapPainter keeps a top-down false-colour image of the field.
type HeightmapPainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewHeightmapPainter allocates a painter for an n×n field.
func NewHeightmapPainter(n int) *HeightmapPainter {
	hp := &HeightmapPainter{n: n, buf: make([]byte, 4*n*n)}
	hp.img = ebiten.NewImage(n, n)
	return hp
}

// Blit uploads the field heights and draws them at (x, y) with the given
// side length in pixels.
func (hp *HeightmapPainter) Blit(dst *ebiten.Image, cells []water.Cell, palette *HeightPalette, x, y, side float64) {
	if len(cells) != hp.n*hp.n {
		return
	}
	fillHeightRGBA(hp.buf, cells, hp.n, palette)
	hp.img.WritePixels(hp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(side/float64(hp.n), side/float64(hp.n))
	op.GeoM.Translate(x, y)
	dst.DrawImage(hp.img, op)
}

// Size returns the dimensions of the underlying image.
func (hp *HeightmapPainter) Size() (int, int) { return hp.n, hp.n }
