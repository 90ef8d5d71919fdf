package water

// Disturbance is a simulation-space point where a pulse is injected. Radius
// and strength are shared configuration.
type Disturbance struct {
	X, Y float64
}

// Sentinel lies far outside any field and disables a source for a tick.
var Sentinel = Disturbance{X: 10000, Y: 10000}

// IsSentinel reports whether d is the disabled coordinate.
func (d Disturbance) IsSentinel() bool { return d == Sentinel }

// PointerSource tracks pointer hits on the surface. Influence is
// edge-triggered: a position is emitted once per event, then the sentinel.
type PointerSource struct {
	pending bool
	pos     Disturbance
	last    Disturbance
	hasLast bool
}

// Move records a hit at (x, y).
func (p *PointerSource) Move(x, y float64) {
	p.pos = Disturbance{X: x, Y: y}
	p.last = p.pos
	p.hasLast = true
	p.pending = true
}

// Miss records an event whose ray did not reach the surface.
func (p *PointerSource) Miss() {
	p.pos = Sentinel
	p.pending = true
}

// Take returns the coordinate for this tick and re-arms the source.
func (p *PointerSource) Take() Disturbance {
	if !p.pending {
		return Sentinel
	}
	p.pending = false
	return p.pos
}

// Last returns the most recent known hit.
func (p *PointerSource) Last() (Disturbance, bool) { return p.last, p.hasLast }

// Reset forgets all pointer state.
func (p *PointerSource) Reset() { *p = PointerSource{} }

// DropSource holds at most one pending random drop. The timer writes it and
// the next tick reads and clears it.
type DropSource struct {
	pending   bool
	at        Disturbance
	scheduled uint64
	discarded uint64
}

// Schedule sets the next drop. An unconsumed earlier drop is discarded.
func (d *DropSource) Schedule(x, y float64) {
	if d.pending {
		d.discarded++
	}
	d.at = Disturbance{X: x, Y: y}
	d.pending = true
	d.scheduled++
}

// Take returns the pending drop, if any, and clears it.
func (d *DropSource) Take() (Disturbance, bool) {
	if !d.pending {
		return Disturbance{}, false
	}
	d.pending = false
	return d.at, true
}

// Pending reports whether a drop waits for the next tick.
func (d *DropSource) Pending() bool { return d.pending }

// Scheduled counts every Schedule call.
func (d *DropSource) Scheduled() uint64 { return d.scheduled }

// Discarded counts drops overwritten before a tick consumed them.
func (d *DropSource) Discarded() uint64 { return d.discarded }

// Reset clears any pending drop and the counters.
func (d *DropSource) Reset() { *d = DropSource{} }
