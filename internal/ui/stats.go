package ui

import "fmt"

// Stats is the snapshot shown by the overlay.
type Stats struct {
	State     string
	Solver    string
	FPS       float64
	TPS       float64
	Ticks     uint64
	Cells     int
	Energy    float64
	MaxHeight float64
	Drops     uint64
	Discarded uint64
}

// Lines formats the stats for a debug print.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f", s.FPS, s.TPS),
		fmt.Sprintf("%s on %s, %d cells", s.State, s.Solver, s.Cells),
		fmt.Sprintf("ticks %d", s.Ticks),
		fmt.Sprintf("energy %.4g  peak %.3f", s.Energy, s.MaxHeight),
		fmt.Sprintf("drops %d (%d overwritten)", s.Drops, s.Discarded),
	}
}
