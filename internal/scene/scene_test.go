package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"ripple/internal/core"
	"ripple/internal/sims/water"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestPickCentreHitsOrigin(t *testing.T) {
	s := New(8, 1024, core.Size{W: 800, H: 600})
	x, y, ok := s.Pick(400, 300)
	if !ok {
		t.Fatal("centre ray missed the proxy")
	}
	if !near(x, 0, 1e-6) || !near(y, 0, 1e-6) {
		t.Fatalf("centre hit (%f, %f), want origin", x, y)
	}
}

func TestPickTopEdgeMapsToPositiveY(t *testing.T) {
	s := New(8, 1024, core.Size{W: 800, H: 600})
	x, y, ok := s.Pick(400, 0)
	if !ok {
		t.Fatal("top ray missed the proxy")
	}
	want := DefaultHeight * math.Tan(mgl64.DegToRad(DefaultFovDegrees)/2)
	if !near(x, 0, 1e-6) || !near(y, want, 1e-6) {
		t.Fatalf("top hit (%f, %f), want (0, %f)", x, y, want)
	}
	if x, _, _ := s.Pick(800, 300); x <= 0 {
		t.Fatalf("right edge hit x=%f, want positive", x)
	}
}

func TestProjectRoundTripsThroughPick(t *testing.T) {
	s := New(8, 1024, core.Size{W: 640, H: 480})
	ndcX, ndcY, _, ok := s.Camera.Project(SimToWorld(100, -50, 0))
	if !ok {
		t.Fatal("surface point not visible")
	}
	px, py := Pixel(ndcX, ndcY, s.Viewport())
	x, y, ok := s.Pick(px, py)
	if !ok || !near(x, 100, 1e-6) || !near(y, -50, 1e-6) {
		t.Fatalf("round trip = (%f, %f, %v), want (100, -50)", x, y, ok)
	}
}

func TestPickMissesSmallProxy(t *testing.T) {
	s := New(8, 10, core.Size{W: 800, H: 600})
	if _, _, ok := s.Pick(0, 0); ok {
		t.Fatal("corner ray should miss a 10 unit proxy")
	}
	empty := New(8, 1024, core.Size{})
	if _, _, ok := empty.Pick(0, 0); ok {
		t.Fatal("empty viewport should never hit")
	}
}

func TestResizeOnlyTouchesCamera(t *testing.T) {
	s := New(8, 1024, core.Size{W: 800, H: 600})
	mesh := s.Mesh
	s.Resize(core.Size{W: 300, H: 600})
	if s.Mesh != mesh {
		t.Fatal("resize replaced the mesh")
	}
	if !near(s.Camera.Aspect(), 0.5, 1e-12) {
		t.Fatalf("aspect = %f, want 0.5", s.Camera.Aspect())
	}
	if s.Viewport() != (core.Size{W: 300, H: 600}) {
		t.Fatalf("viewport = %+v", s.Viewport())
	}
}

func TestFlatFieldHasUpNormals(t *testing.T) {
	f := water.NewField(6, 1024)
	m := NewSurfaceMesh(6, 1024)
	m.Rebuild(f)
	for i, v := range m.Vertices() {
		if v.Normal != (mgl64.Vec3{0, 1, 0}) || v.Pos.Y() != 0 {
			t.Fatalf("vertex %d = %+v, want flat", i, v)
		}
	}
	if c := m.Vertex(0, 0).Pos; c.X() != -512 || c.Z() != 512 {
		t.Fatalf("corner vertex at %v, want (-512, 0, 512)", c)
	}
}

func TestNormalsMirrorAroundCentredPulse(t *testing.T) {
	cfg := water.DefaultConfig()
	cfg.Resolution = 8
	cfg.DisturbanceRadius = 300
	sim, err := water.New(cfg, water.NewCPUSolver(1))
	if err != nil {
		t.Fatalf("water.New: %v", err)
	}
	sim.Pointer().Move(0, 0)
	if err := sim.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	m := NewSurfaceMesh(8, cfg.Extent)
	m.Rebuild(sim.Field())
	n := m.Resolution()
	for j := 0; j < n; j++ {
		for i := 0; i < n/2; i++ {
			a, b := m.Vertex(i, j), m.Vertex(n-1-i, j)
			if !near(a.Height, b.Height, 1e-9) {
				t.Fatalf("heights differ at (%d,%d): %f vs %f", i, j, a.Height, b.Height)
			}
			if !near(a.Normal.X(), -b.Normal.X(), 1e-9) {
				t.Fatalf("normal x not mirrored at (%d,%d): %f vs %f", i, j, a.Normal.X(), b.Normal.X())
			}
		}
	}
	// Left of the crest the surface rises toward +x, so the normal leans to -x.
	if nx := m.Vertex(2, 3).Normal.X(); nx >= 0 {
		t.Fatalf("normal x left of crest = %f, want negative", nx)
	}
}

func TestTrianglesCoverLattice(t *testing.T) {
	m := NewSurfaceMesh(4, 100)
	count := 0
	m.Triangles(func(a, b, c int) {
		for _, idx := range []int{a, b, c} {
			if idx < 0 || idx >= len(m.Vertices()) {
				t.Fatalf("index %d out of range", idx)
			}
		}
		count++
	})
	if count != 2*3*3 {
		t.Fatalf("triangles = %d, want 18", count)
	}
}

func TestShadeFacingAwayIsEmissivePlusAmbient(t *testing.T) {
	l := DefaultLighting()
	got := l.Shade(mgl64.Vec3{}, mgl64.Vec3{0, -1, 0}, mgl64.Vec3{0, 200, 0})
	m := l.Material
	for k := 0; k < 3; k++ {
		want := m.Emissive[k] + l.Ambient[k]*l.AmbientIntensity*m.Diffuse[k]/math.Pi
		if !near(got[k], want, 1e-12) {
			t.Fatalf("channel %d = %f, want %f", k, got[k], want)
		}
	}
	lit := l.Shade(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 200, 0})
	for k := 0; k < 3; k++ {
		if lit[k] < got[k] || lit[k] > 1 {
			t.Fatalf("lit channel %d = %f, want within [%f, 1]", k, lit[k], got[k])
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0xff8000); !near(got.X(), 1, 0) || !near(got.Y(), 128.0/255, 1e-12) || got.Z() != 0 {
		t.Fatalf("Hex = %v", got)
	}
	if got := HexRGBA(0xe8e8e3); got.R != 0xe8 || got.B != 0xe3 || got.A != 0xff {
		t.Fatalf("HexRGBA = %+v", got)
	}
}
