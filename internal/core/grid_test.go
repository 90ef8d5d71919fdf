package core

import "testing"

func TestClampPinsToEdges(t *testing.T) {
	g := NewGrid(4, 3)
	cases := []struct{ x, y, wx, wy int }{
		{-1, 0, 0, 0},
		{4, 1, 3, 1},
		{2, -5, 2, 0},
		{2, 3, 2, 2},
		{1, 1, 1, 1},
	}
	for _, c := range cases {
		x, y := g.Clamp(c.x, c.y)
		if x != c.wx || y != c.wy {
			t.Fatalf("Clamp(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}
	if g.ClampIndex(5, 5) != g.Len()-1 {
		t.Fatalf("ClampIndex past the corner should hit the last cell")
	}
}

func TestNewGridNeverEmpty(t *testing.T) {
	g := NewGrid(0, -3)
	if g.W != 1 || g.H != 1 {
		t.Fatalf("expected 1x1, got %dx%d", g.W, g.H)
	}
}
