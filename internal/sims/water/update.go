package water

import (
	"math"

	"ripple/internal/core"
)

// StepParams carries the per-tick inputs to a solver.
type StepParams struct {
	Damping      float64
	Radius       float64
	Strength     float64
	Disturbances []Disturbance
}

// active drops sentinel entries so solvers never evaluate them.
func (p StepParams) active() []Disturbance {
	out := make([]Disturbance, 0, len(p.Disturbances))
	for _, d := range p.Disturbances {
		if !d.IsSentinel() {
			out = append(out, d)
		}
	}
	return out
}

// Pulse returns the raised-cosine contribution of a disturbance at distance
// dist. It peaks at 2*strength in the centre and is exactly zero at or beyond
// radius.
func Pulse(dist, radius, strength float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	phase := dist * math.Pi / radius
	if phase < 0 {
		phase = 0
	}
	return (math.Cos(phase) + 1) * strength
}

// stepRows advances rows [y0, y1) of dst from src. Out-of-grid neighbours
// read the cell itself.
func stepRows(src, dst []Cell, g core.Grid, extent float64, p StepParams, active []Disturbance, y0, y1 int) {
	n := g.W
	size := extent / float64(n)
	half := extent / 2
	damping := p.Damping
	for y := y0; y < y1; y++ {
		row := y * n
		below := row
		if y > 0 {
			below -= n
		}
		above := row
		if y < g.H-1 {
			above += n
		}
		cy := (float64(y)+0.5)*size - half
		for x := 0; x < n; x++ {
			i := row + x
			left, right := i, i
			if x > 0 {
				left--
			}
			if x < n-1 {
				right++
			}
			sum := float64(src[left].Height) + float64(src[right].Height) +
				float64(src[below+x].Height) + float64(src[above+x].Height)
			h := (sum*0.5 - float64(src[i].Prev)) * damping
			if len(active) > 0 {
				cx := (float64(x)+0.5)*size - half
				for _, d := range active {
					h += Pulse(math.Hypot(cx-d.X, cy-d.Y), p.Radius, p.Strength)
				}
			}
			dst[i] = Cell{Height: float32(h), Prev: src[i].Height}
		}
	}
}
