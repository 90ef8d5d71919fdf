package water

import (
	"math"

	"ripple/internal/core"
)

// Cell packs the two heights the second-order update needs: the current
// height and the one before it.
type Cell struct {
	Height float32
	Prev   float32
}

// Field is the ping-pong height store. Two same-shaped grids live in an arena
// and cur names the readable one; solvers write the other and commit.
type Field struct {
	grid   core.Grid
	extent float64
	cells  [2][]Cell
	cur    int

	commits uint64
	resets  uint64
}

// NewField allocates a flat n×n field spanning extent world units.
func NewField(n int, extent float64) *Field {
	g := core.NewGrid(n, n)
	return &Field{
		grid:   g,
		extent: extent,
		cells:  [2][]Cell{make([]Cell, g.Len()), make([]Cell, g.Len())},
	}
}

// Resolution returns the number of cells per side.
func (f *Field) Resolution() int { return f.grid.W }

// Extent returns the world-space width of the field.
func (f *Field) Extent() float64 { return f.extent }

// Grid exposes index helpers for the field layout.
func (f *Field) Grid() core.Grid { return f.grid }

// CellSize returns the world-space width of one cell.
func (f *Field) CellSize() float64 { return f.extent / float64(f.grid.W) }

// Current returns the settled grid from the last commit. Callers must treat
// it as read-only; only solvers write cells.
func (f *Field) Current() []Cell { return f.cells[f.cur] }

// Commits counts completed ticks since creation.
func (f *Field) Commits() uint64 { return f.commits }

// Height returns the current height at (x, y), clamping to the nearest edge.
func (f *Field) Height(x, y int) float32 {
	return f.cells[f.cur][f.grid.ClampIndex(x, y)].Height
}

// CellCenter returns the simulation-space centre of cell (x, y). The field is
// centred on the origin.
func (f *Field) CellCenter(x, y int) (float64, float64) {
	size := f.CellSize()
	half := f.extent / 2
	return (float64(x)+0.5)*size - half, (float64(y)+0.5)*size - half
}

// MaxAbs returns the largest absolute current height.
func (f *Field) MaxAbs() float64 {
	var m float64
	for _, c := range f.cells[f.cur] {
		if v := math.Abs(float64(c.Height)); v > m {
			m = v
		}
	}
	return m
}

// Energy returns the discrete energy of the damped recurrence,
//
//	E = Σh² + d·Σp² − d·Σ h·(A p)
//
// where p is the previous height and A averages the four clamped neighbours
// times two. Without disturbances each tick multiplies E by exactly d.
func (f *Field) Energy(damping float64) float64 {
	cells := f.cells[f.cur]
	n := f.grid.W
	var sumH, sumP, cross float64
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := cells[y*n+x]
			h := float64(c.Height)
			p := float64(c.Prev)
			ap := 0.5 * (float64(cells[f.grid.ClampIndex(x-1, y)].Prev) +
				float64(cells[f.grid.ClampIndex(x+1, y)].Prev) +
				float64(cells[f.grid.ClampIndex(x, y-1)].Prev) +
				float64(cells[f.grid.ClampIndex(x, y+1)].Prev))
			sumH += h * h
			sumP += p * p
			cross += h * ap
		}
	}
	return sumH + damping*sumP - damping*cross
}

// Reset flattens both grids.
func (f *Field) Reset() {
	for i := range f.cells {
		clear(f.cells[i])
	}
	f.cur = 0
	f.resets++
}

// buffers returns the readable source grid and the writable destination grid.
func (f *Field) buffers() (src, dst []Cell) {
	return f.cells[f.cur], f.cells[1-f.cur]
}

// commit makes the destination grid current.
func (f *Field) commit() {
	f.cur = 1 - f.cur
	f.commits++
}
