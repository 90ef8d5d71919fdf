package core

// Size describes viewport or grid dimensions in pixels or cells.
type Size struct {
	W int
	H int
}

// Aspect returns W/H, or 1 for a degenerate size.
func (s Size) Aspect() float64 {
	if s.W <= 0 || s.H <= 0 {
		return 1
	}
	return float64(s.W) / float64(s.H)
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Tunable is implemented by anything that exposes live parameters to the HUD.
type Tunable interface {
	Name() string
	Parameters() ParameterSnapshot
}
