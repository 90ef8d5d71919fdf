package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		ax, ay := a.Point(512)
		bx, by := b.Point(512)
		if ax != bx || ay != by {
			t.Fatalf("sample %d differs: (%f,%f) vs (%f,%f)", i, ax, ay, bx, by)
		}
	}
}

func TestUniformStaysInRange(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 1000; i++ {
		v := r.Uniform(5, -5)
		if v < -5 || v >= 5 {
			t.Fatalf("value %f outside [-5, 5)", v)
		}
	}
}
