package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"ripple/internal/sims/water"
)

// Vertex is one reconstructed surface sample in world space.
type Vertex struct {
	Pos    mgl64.Vec3
	Normal mgl64.Vec3
	Height float64
}

// SurfaceMesh is an n×n vertex lattice spanning the field extent. It is
// derived from the field every frame and never fed back.
type SurfaceMesh struct {
	n        int
	extent   float64
	vertices []Vertex
	xs       []float64
}

// NewSurfaceMesh lays out a flat lattice whose corner vertices sit on the
// edges of the field.
func NewSurfaceMesh(n int, extent float64) *SurfaceMesh {
	if n < 2 {
		n = 2
	}
	m := &SurfaceMesh{
		n:        n,
		extent:   extent,
		vertices: make([]Vertex, n*n),
		xs:       make([]float64, n),
	}
	for i := range m.xs {
		m.xs[i] = (float64(i)/float64(n-1) - 0.5) * extent
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m.vertices[j*n+i] = Vertex{
				Pos:    SimToWorld(m.xs[i], m.xs[j], 0),
				Normal: mgl64.Vec3{0, 1, 0},
			}
		}
	}
	return m
}

func (m *SurfaceMesh) Resolution() int { return m.n }

// Vertices exposes the lattice in row-major order (simulation y rows).
func (m *SurfaceMesh) Vertices() []Vertex { return m.vertices }

// Vertex returns the sample at lattice coordinate (i, j).
func (m *SurfaceMesh) Vertex(i, j int) Vertex { return m.vertices[j*m.n+i] }

// Rebuild copies elevations from the field's current grid and recomputes
// normals from central differences with edge clamping.
func (m *SurfaceMesh) Rebuild(f *water.Field) {
	n := m.n
	if f.Resolution() != n {
		return
	}
	scale := float64(n) / f.Extent()
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			h := float64(f.Height(i, j))
			hl := float64(f.Height(i-1, j))
			hr := float64(f.Height(i+1, j))
			hd := float64(f.Height(i, j-1))
			hu := float64(f.Height(i, j+1))
			v := &m.vertices[j*n+i]
			v.Height = h
			v.Pos = SimToWorld(m.xs[i], m.xs[j], h)
			v.Normal = mgl64.Vec3{(hl - hr) * scale, 1, -(hd - hu) * scale}.Normalize()
		}
	}
}

// Triangles calls fn for the two triangles of every lattice quad, wound
// counter-clockwise as seen from above.
func (m *SurfaceMesh) Triangles(fn func(a, b, c int)) {
	n := m.n
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			a := j*n + i
			b := a + 1
			c := a + n
			d := c + 1
			fn(a, b, d)
			fn(a, d, c)
		}
	}
}
