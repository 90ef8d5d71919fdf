package scene

import (
	"ripple/internal/core"
	"ripple/internal/sims/water"
)

// Scene bundles everything the render pass needs besides the field: the
// camera, the reconstructed mesh, the pick proxy and the light rig.
type Scene struct {
	Camera   *Camera
	Mesh     *SurfaceMesh
	Proxy    Plane
	Lighting Lighting

	viewport core.Size
}

// New builds a scene for an n×n field of the given extent.
func New(n int, extent float64, viewport core.Size) *Scene {
	return &Scene{
		Camera:   NewCamera(viewport.Aspect()),
		Mesh:     NewSurfaceMesh(n, extent),
		Proxy:    Plane{Size: extent},
		Lighting: DefaultLighting(),
		viewport: viewport,
	}
}

// Viewport returns the output surface size in device pixels.
func (s *Scene) Viewport() core.Size { return s.viewport }

// Resize updates the viewport and camera aspect. Nothing else changes.
func (s *Scene) Resize(viewport core.Size) {
	s.viewport = viewport
	s.Camera.SetAspect(viewport.Aspect())
}

// Pick casts a ray through device pixel (px, py) and returns the simulation
// coordinate where it meets the proxy.
func (s *Scene) Pick(px, py float64) (float64, float64, bool) {
	if s.viewport.Empty() {
		return 0, 0, false
	}
	ndcX, ndcY := NDC(px, py, s.viewport)
	hit, ok := s.Proxy.Intersect(s.Camera.Ray(ndcX, ndcY))
	if !ok {
		return 0, 0, false
	}
	x, y := WorldToSim(hit)
	return x, y, true
}

// Update reconstructs the mesh from the field's current grid.
func (s *Scene) Update(f *water.Field) { s.Mesh.Rebuild(f) }
