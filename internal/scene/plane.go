package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the flat, unlit pick proxy: a square of side Size centred on the
// origin at y = 0. It never displaces, so hits are stable while the water
// moves.
type Plane struct {
	Size float64
}

// Intersect returns where r crosses the square, if it does.
func (p Plane) Intersect(r Ray) (mgl64.Vec3, bool) {
	if math.Abs(r.Dir.Y()) < 1e-12 {
		return mgl64.Vec3{}, false
	}
	t := -r.Origin.Y() / r.Dir.Y()
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	hit := r.At(t)
	half := p.Size / 2
	if math.Abs(hit.X()) > half || math.Abs(hit.Z()) > half {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{hit.X(), 0, hit.Z()}, true
}

// WorldToSim maps a world point on the surface to simulation coordinates.
func WorldToSim(v mgl64.Vec3) (float64, float64) { return v.X(), -v.Z() }

// SimToWorld lifts a simulation coordinate with elevation h into world space.
func SimToWorld(x, y, h float64) mgl64.Vec3 { return mgl64.Vec3{x, h, -y} }
