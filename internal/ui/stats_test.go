package ui

import (
	"strings"
	"testing"
)

func TestStatsLines(t *testing.T) {
	lines := Stats{State: "running", Solver: "cpu", Ticks: 12, Cells: 64, Drops: 3, Discarded: 1}.Lines()
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"running on cpu, 64 cells", "ticks 12", "drops 3 (1 overwritten)"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestOverlayStateToggles(t *testing.T) {
	var s overlayState
	s.toggle(falseColour)
	if !s.has(falseColour) || s.has(showStats) {
		t.Fatalf("flags = %b", s.flags)
	}
	s.toggle(showStats)
	s.toggle(falseColour)
	if s.has(falseColour) || !s.has(showStats) {
		t.Fatalf("flags = %b", s.flags)
	}
}
