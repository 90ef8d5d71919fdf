package render

import "ripple/internal/sims/water"

// fillHeightRGBA writes one RGBA pixel per cell using the palette. Rows are
// flipped so simulation +Y is up in the image.
func fillHeightRGBA(buf []byte, cells []water.Cell, n int, palette *HeightPalette) {
	if n <= 0 || len(cells) != n*n || len(buf) < 4*len(cells) {
		return
	}
	for y := 0; y < n; y++ {
		row := (n - 1 - y) * n
		for x := 0; x < n; x++ {
			col := palette.At(float64(cells[y*n+x].Height))
			base := (row + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
