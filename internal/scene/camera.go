package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"ripple/internal/core"
)

// Camera defaults: a 75° perspective looking straight down at the surface.
const (
	DefaultFovDegrees = 75
	DefaultNear       = 1
	DefaultFar        = 3000
	DefaultHeight     = 200
)

// Ray is a half-line in world space. Dir is unit length.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float64) mgl64.Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Camera is a perspective camera. Matrices are rebuilt whenever the aspect
// ratio changes.
type Camera struct {
	Fov    float64 // vertical, radians
	Near   float64
	Far    float64
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3

	aspect   float64
	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
	inverse  mgl64.Mat4
}

// NewCamera places the camera above the origin. World up on screen is -Z,
// so simulation +Y points to the top of the viewport.
func NewCamera(aspect float64) *Camera {
	c := &Camera{
		Fov:    mgl64.DegToRad(DefaultFovDegrees),
		Near:   DefaultNear,
		Far:    DefaultFar,
		Eye:    mgl64.Vec3{0, DefaultHeight, 0},
		Target: mgl64.Vec3{0, 0, 0},
		Up:     mgl64.Vec3{0, 0, -1},
	}
	c.SetAspect(aspect)
	return c
}

// Aspect returns the current width/height ratio.
func (c *Camera) Aspect() float64 { return c.aspect }

// SetAspect updates the projection. Non-positive values fall back to 1.
func (c *Camera) SetAspect(aspect float64) {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	c.aspect = aspect
	c.update()
}

func (c *Camera) update() {
	c.view = mgl64.LookAtV(c.Eye, c.Target, c.Up)
	c.proj = mgl64.Perspective(c.Fov, c.aspect, c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
	c.inverse = c.viewProj.Inv()
}

func (c *Camera) View() mgl64.Mat4 { return c.view }

func (c *Camera) Projection() mgl64.Mat4 { return c.proj }

// Project maps a world point to normalized device coordinates. ok is false
// for points behind the eye or outside the depth range.
func (c *Camera) Project(p mgl64.Vec3) (ndcX, ndcY, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	depth = clip.Z() / w
	if depth < -1 || depth > 1 {
		return 0, 0, 0, false
	}
	return clip.X() / w, clip.Y() / w, depth, true
}

// Ray returns the world-space ray through the given NDC point, starting on
// the near plane.
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	near := c.unproject(ndcX, ndcY, -1)
	far := c.unproject(ndcX, ndcY, 1)
	return Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}

func (c *Camera) unproject(x, y, z float64) mgl64.Vec3 {
	v := c.inverse.Mul4x1(mgl64.Vec4{x, y, z, 1})
	return v.Vec3().Mul(1 / v.W())
}

// NDC converts a device pixel to normalized device coordinates. Y is flipped
// so the top edge maps to +1.
func NDC(px, py float64, viewport core.Size) (float64, float64) {
	if viewport.Empty() {
		return 0, 0
	}
	return px/float64(viewport.W)*2 - 1, -(py/float64(viewport.H))*2 + 1
}

// Pixel is the inverse of NDC.
func Pixel(ndcX, ndcY float64, viewport core.Size) (float64, float64) {
	return (ndcX + 1) / 2 * float64(viewport.W), (1 - ndcY) / 2 * float64(viewport.H)
}
