package core

// Grid describes a row-major W×H lattice and the index arithmetic shared by
// everything that walks one.
type Grid struct {
	W, H int
}

// NewGrid returns a grid with the given dimensions, never smaller than 1×1.
func NewGrid(w, h int) Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Grid{W: w, H: h}
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.W * g.H }

// Index returns the linear slice index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Clamp pins coordinates to the nearest edge cell.
func (g Grid) Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.H {
		y = g.H - 1
	}
	return x, y
}

// ClampIndex is Index after Clamp.
func (g Grid) ClampIndex(x, y int) int {
	x, y = g.Clamp(x, y)
	return y*g.W + x
}
